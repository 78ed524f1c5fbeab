package bracket

// Layouter assigns a canvas position to a slot. Implementations must be
// deterministic and must not depend on the order in which slots are asked for.
type Layouter interface {
	Position(slot Slot) Position
}

// LayoutConfig holds the spacing constants of [GridLayout].
// Zero fields fall back to the defaults from [DefaultLayoutConfig].
type LayoutConfig struct {
	BlockOffsetX int `toml:"block_offset_x" json:"block_offset_x,omitempty"` // column width
	BlockOffsetY int `toml:"block_offset_y" json:"block_offset_y,omitempty"` // row height at stage 0
	WinnersY     int `toml:"winners_offset_y" json:"winners_offset_y,omitempty"`
}

// DefaultLayoutConfig returns the spacing the ladder editor's default match
// block fits into without overlap.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{BlockOffsetX: 256, BlockOffsetY: 96, WinnersY: 64}
}

// WithDefaults returns c with zero fields replaced by defaults.
func (c LayoutConfig) WithDefaults() LayoutConfig {
	d := DefaultLayoutConfig()
	if c.BlockOffsetX <= 0 {
		c.BlockOffsetX = d.BlockOffsetX
	}
	if c.BlockOffsetY <= 0 {
		c.BlockOffsetY = d.BlockOffsetY
	}
	if c.WinnersY <= 0 {
		c.WinnersY = d.WinnersY
	}
	return c
}

// GridLayout places winners matches in stage columns from the left edge and
// losers matches in a second column set starting below the deepest winners
// match and three quarters of a column to the right.
type GridLayout struct {
	cfg      LayoutConfig
	losersX  int
	losersY  int
	capacity int
}

// NewGridLayout returns the default layout for a bracket of the given capacity.
func NewGridLayout(capacity int, cfg LayoutConfig) *GridLayout {
	cfg = cfg.WithDefaults()
	return &GridLayout{
		cfg:      cfg,
		capacity: capacity,
		losersX:  cfg.BlockOffsetX * 3 / 4,
		losersY:  capacity*cfg.BlockOffsetY/2 + 2*cfg.WinnersY,
	}
}

// Position implements [Layouter].
func (l *GridLayout) Position(s Slot) Position {
	if s.Group == Winners {
		return l.winners(s)
	}
	return l.losers(s)
}

// winners doubles the row pitch each stage and centers every match between
// the two matches that feed it.
func (l *GridLayout) winners(s Slot) Position {
	offX, offY := l.cfg.BlockOffsetX, l.cfg.BlockOffsetY
	span := 1 << s.Stage
	x := 0
	if s.Stage > 0 {
		x = (2*s.Stage - 1) * offX
	}
	return Position{
		X: x,
		Y: l.cfg.WinnersY + s.Index*offY*span + offY*(span-1)/2,
	}
}

func (l *GridLayout) losers(s Slot) Position {
	offX, offY := l.cfg.BlockOffsetX, l.cfg.BlockOffsetY
	lower := 0
	if s.Group == LosersLower {
		lower = 1
	}

	step := offY
	if s.Stage > 0 {
		step = offY * (s.Stage + lower)
	}
	inset := 0
	if v := (2*lower + s.Stage) / 2; v > 0 {
		inset = (2*v - 1) * offY / 2
	}

	return Position{
		X: l.losersX + (losersColumn(s.Stage)+lower)*offX,
		Y: l.losersY + s.Index*step + inset,
	}
}

// losersColumn is the column of a stage's first losers group: one column per
// earlier stage plus one more for every earlier stage that split.
func losersColumn(stage int) int {
	col := stage
	for s := 0; s < stage; s++ {
		if splitsLosers(s) {
			col++
		}
	}
	return col
}
