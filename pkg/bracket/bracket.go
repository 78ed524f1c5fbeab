package bracket

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned by [Build] and [Generate] when the
	// capacity is not a positive power of two.
	ErrInvalidCapacity = errors.New("capacity must be a power of two")

	// ErrUnlinkedSlot is returned by [Link] when a progression rule targets a
	// registry slot that was never created. Use [errors.As] with
	// *[UnlinkedSlotError] for the stage, group and index.
	ErrUnlinkedSlot = errors.New("progression targets a missing slot")
)

const (
	// MaxCapacity is the largest capacity the CLI and the HTTP API accept.
	// [Build] itself takes any positive power of two; see [CheckLimit].
	MaxCapacity = 4096

	// DefaultDate is the placeholder scheduling timestamp given to every match.
	// The consuming tool overwrites it when matches are scheduled.
	DefaultDate = "2023-03-26T05:42:36.527195+01:00"
)

// Group identifies which sub-bracket a match belongs to within its stage.
type Group int

const (
	// Winners holds matches between players who have not lost yet.
	Winners Group = iota
	// LosersUpper is the first (or only) losers group of a stage.
	LosersUpper
	// LosersLower is the second losers group, present only in stages that
	// split their losers bracket.
	LosersLower

	groupCount = 3
)

// Groups lists every group in creation order within a stage.
var Groups = [groupCount]Group{Winners, LosersUpper, LosersLower}

// String returns the short label used in logs and rendered output.
func (g Group) String() string {
	switch g {
	case Winners:
		return "WB"
	case LosersUpper:
		return "LB0"
	case LosersLower:
		return "LB1"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// IsLosers reports whether g is one of the losers-bracket groups.
func (g Group) IsLosers() bool { return g == LosersUpper || g == LosersLower }

// Position is a cosmetic grid coordinate in the consumer's canvas units.
type Position struct {
	X int
	Y int
}

// Slot addresses a match by where it sits in the bracket rather than by id.
type Slot struct {
	Stage int
	Group Group
	Index int // ordinal within (Stage, Group), in creation order
}

func (s Slot) String() string {
	return fmt.Sprintf("stage %d %s[%d]", s.Stage, s.Group, s.Index)
}

// Match is one bracket game slot.
//
// ID, Slot and Position are fixed at creation. The remaining fields are
// placeholders owned by the consuming tool; generation fills them with the
// "not yet played" defaults and never touches them again.
type Match struct {
	ID       int
	Slot     Slot
	Position Position

	Team1Score         *int
	Team2Score         *int
	Completed          bool
	Losers             bool
	PicksBans          []string
	Current            bool
	Date               string
	ConditionalMatches []int
	Acronyms           []string
}

// Progression is a directed edge: the winner (or, when Losers is set, the
// loser) of SourceID advances to a slot in TargetID.
type Progression struct {
	SourceID int
	TargetID int
	Losers   bool
}

// Bracket is the final artifact of generation.
type Bracket struct {
	Capacity     int
	Matches      []Match
	Progressions []Progression
}

// Stages returns the number of stages in the bracket.
func (b *Bracket) Stages() int {
	if len(b.Matches) == 0 {
		return 0
	}
	return b.Matches[len(b.Matches)-1].Slot.Stage + 1
}

// MatchByID returns the match with the given id. Ids are dense and start at
// 1, so this is an index lookup.
func (b *Bracket) MatchByID(id int) (Match, bool) {
	if id < 1 || id > len(b.Matches) {
		return Match{}, false
	}
	return b.Matches[id-1], true
}

// CountGroup returns how many matches belong to g across all stages.
func (b *Bracket) CountGroup(g Group) int {
	n := 0
	for _, m := range b.Matches {
		if m.Slot.Group == g {
			n++
		}
	}
	return n
}

// ValidateCapacity reports whether capacity can be generated. Capacity 1 is
// valid and yields an empty bracket. The returned error wraps
// [ErrInvalidCapacity].
func ValidateCapacity(capacity int) error {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return nil
}

// CheckLimit is ValidateCapacity plus the [MaxCapacity] bound applied to user
// input.
func CheckLimit(capacity int) error {
	if err := ValidateCapacity(capacity); err != nil {
		return err
	}
	if capacity > MaxCapacity {
		return fmt.Errorf("%w no larger than %d, got %d", ErrInvalidCapacity, MaxCapacity, capacity)
	}
	return nil
}

// UnlinkedSlotError describes a progression rule that pointed at a slot the
// generator never created.
type UnlinkedSlotError struct {
	MatchID int  // the match on the existing end of the edge
	Want    Slot
	Have    int  // number of slots that exist in (Want.Stage, Want.Group)
}

func (e *UnlinkedSlotError) Error() string {
	return fmt.Sprintf("%s: match %d needs %s but only %d exist", ErrUnlinkedSlot, e.MatchID, e.Want, e.Have)
}

// Unwrap lets errors.Is match [ErrUnlinkedSlot].
func (e *UnlinkedSlotError) Unwrap() error { return ErrUnlinkedSlot }
