package bracket

// Options configures generation. The zero value is valid.
type Options struct {
	// Lenient skips progression edges whose target slot does not exist
	// instead of failing with ErrUnlinkedSlot.
	Lenient bool

	// Layout tunes the default GridLayout. Ignored when Layouter is set.
	Layout LayoutConfig

	// Layouter overrides the default GridLayout.
	Layouter Layouter

	// Date is the placeholder timestamp for every match. Empty means DefaultDate.
	Date string

	// Logger receives notices about skipped edges in lenient mode.
	Logger func(msg string, args ...any)
}

func (o Options) logf(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger(msg, args...)
	}
}

// Registry records, per stage and group, the ids created there in creation
// order. Every stage is initialized before anything is added to it.
type Registry struct {
	stages []stageSlots
}

type stageSlots [groupCount][]int

// Stages returns the number of stages recorded.
func (r *Registry) Stages() int { return len(r.stages) }

// IDs returns the ids of (stage, g) in creation order. The slice must not be
// modified. Missing stages and empty groups both yield nil.
func (r *Registry) IDs(stage int, g Group) []int {
	if stage < 0 || stage >= len(r.stages) {
		return nil
	}
	return r.stages[stage][g]
}

// Has reports whether (stage, g) holds at least one match.
func (r *Registry) Has(stage int, g Group) bool { return len(r.IDs(stage, g)) > 0 }

// Lookup returns the id at slot s.
func (r *Registry) Lookup(s Slot) (int, bool) {
	ids := r.IDs(s.Stage, s.Group)
	if s.Index < 0 || s.Index >= len(ids) {
		return 0, false
	}
	return ids[s.Index], true
}

func (r *Registry) openStage() int {
	r.stages = append(r.stages, stageSlots{})
	return len(r.stages) - 1
}

func (r *Registry) record(s Slot, id int) {
	r.stages[s.Stage][s.Group] = append(r.stages[s.Stage][s.Group], id)
}

// splitsLosers reports whether stage emits both LosersUpper and LosersLower.
func splitsLosers(stage int) bool { return stage%3 != 0 }

// losersSizes returns the group sizes of a stage that opens with n winners
// matches.
func losersSizes(stage, n int) (upper, lower int) {
	if !splitsLosers(stage) {
		return n / 2, 0
	}
	return n, n / 2
}

// Build creates every match of a bracket for capacity along with the
// registry the linker needs. It fails with ErrInvalidCapacity before
// creating anything if capacity is not a positive power of two.
func Build(capacity int, opts Options) ([]Match, *Registry, error) {
	if err := ValidateCapacity(capacity); err != nil {
		return nil, nil, err
	}

	layout := opts.Layouter
	if layout == nil {
		layout = NewGridLayout(capacity, opts.Layout)
	}
	factory := newMatchFactory(layout, opts.Date)
	reg := &Registry{}
	matches := make([]Match, 0, totalMatches(capacity))

	add := func(stage int, g Group, count int) {
		for i := 0; i < count; i++ {
			m := factory.create(Slot{Stage: stage, Group: g, Index: i})
			reg.record(m.Slot, m.ID)
			matches = append(matches, m)
		}
	}

	for n := capacity / 2; n > 0; n /= 2 {
		stage := reg.openStage()
		add(stage, Winners, n)
		upper, lower := losersSizes(stage, n)
		add(stage, LosersUpper, upper)
		add(stage, LosersLower, lower)
	}
	return matches, reg, nil
}

// totalMatches predicts len(matches) for capacity so Build allocates once.
func totalMatches(capacity int) int {
	total := 0
	stage := 0
	for n := capacity / 2; n > 0; n /= 2 {
		upper, lower := losersSizes(stage, n)
		total += n + upper + lower
		stage++
	}
	return total
}

// Generate builds and links a complete bracket.
func Generate(capacity int, opts Options) (*Bracket, error) {
	matches, reg, err := Build(capacity, opts)
	if err != nil {
		return nil, err
	}
	edges, err := Link(reg, opts)
	if err != nil {
		return nil, err
	}
	return &Bracket{Capacity: capacity, Matches: matches, Progressions: edges}, nil
}
