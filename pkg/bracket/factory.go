package bracket

// matchFactory hands out match records with strictly increasing ids.
// Each record is built from scratch; nothing is shared between matches.
type matchFactory struct {
	lastID int
	date   string
	layout Layouter
}

func newMatchFactory(layout Layouter, date string) *matchFactory {
	if date == "" {
		date = DefaultDate
	}
	return &matchFactory{date: date, layout: layout}
}

// create builds the next match for slot.
func (f *matchFactory) create(slot Slot) Match {
	f.lastID++
	return Match{
		ID:                 f.lastID,
		Slot:               slot,
		Position:           f.layout.Position(slot),
		Losers:             slot.Group.IsLosers(),
		PicksBans:          []string{},
		Date:               f.date,
		ConditionalMatches: []int{},
		Acronyms:           []string{},
	}
}
