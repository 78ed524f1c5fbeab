// Package ladder models the bracket.json file of the osu! tournament ladder
// editor and converts generated brackets into it.
//
// The editor owns most fields of a match (scores, picks, schedule). This
// package only ever writes their "not yet played" values and passes unknown
// content through untouched when merging into an existing file.
package ladder

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// ErrDanglingProgression is returned by [Document.Validate] when an edge
// names a match the document does not contain.
var ErrDanglingProgression = errors.New("progression references unknown match")

// Document is the subset of bracket.json this tool reads and writes.
type Document struct {
	Matches      []Match         `json:"Matches"`
	Progressions []Progression   `json:"Progressions"`
	Teams        []roster.Record `json:"Teams"`
}

// Match is one entry of the Matches array.
type Match struct {
	ID                 int               `json:"ID"`
	Team1Score         *int              `json:"Team1Score"`
	Team2Score         *int              `json:"Team2Score"`
	Completed          bool              `json:"Completed"`
	Losers             bool              `json:"Losers"`
	PicksBans          []json.RawMessage `json:"PicksBans"`
	Current            bool              `json:"Current"`
	Date               string            `json:"Date"`
	ConditionalMatches []json.RawMessage `json:"ConditionalMatches"`
	Position           Position          `json:"Position"`
	Acronyms           []string          `json:"Acronyms"`
}

// Position is a match block's top-left corner on the editor canvas.
type Position struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

// Progression is one entry of the Progressions array. Losers is always
// written, false included.
type Progression struct {
	SourceID int  `json:"SourceID"`
	TargetID int  `json:"TargetID"`
	Losers   bool `json:"Losers"`
}

// FromBracket builds a document from a generated bracket. Teams is empty;
// set it with [Document.WithTeams].
func FromBracket(b *bracket.Bracket) Document {
	doc := Document{
		Matches:      make([]Match, len(b.Matches)),
		Progressions: make([]Progression, len(b.Progressions)),
		Teams:        []roster.Record{},
	}
	for i, m := range b.Matches {
		doc.Matches[i] = NewMatch(m)
	}
	for i, p := range b.Progressions {
		doc.Progressions[i] = NewProgression(p)
	}
	return doc
}

// NewMatch converts one generated match.
func NewMatch(m bracket.Match) Match {
	acronyms := make([]string, len(m.Acronyms))
	copy(acronyms, m.Acronyms)
	return Match{
		ID:                 m.ID,
		Team1Score:         copyScore(m.Team1Score),
		Team2Score:         copyScore(m.Team2Score),
		Completed:          m.Completed,
		Losers:             m.Losers,
		PicksBans:          rawStrings(m.PicksBans),
		Current:            m.Current,
		Date:               m.Date,
		ConditionalMatches: rawInts(m.ConditionalMatches),
		Position:           Position{X: m.Position.X, Y: m.Position.Y},
		Acronyms:           acronyms,
	}
}

// NewProgression converts one generated edge.
func NewProgression(p bracket.Progression) Progression {
	return Progression{SourceID: p.SourceID, TargetID: p.TargetID, Losers: p.Losers}
}

// WithTeams returns a copy of d with Teams replaced.
func (d Document) WithTeams(teams []roster.Record) Document {
	if teams == nil {
		teams = []roster.Record{}
	}
	d.Teams = teams
	return d
}

// Validate checks that match ids are unique and every progression
// references a match in the document.
func (d Document) Validate() error {
	ids := make(map[int]bool, len(d.Matches))
	for _, m := range d.Matches {
		if ids[m.ID] {
			return fmt.Errorf("duplicate match id %d", m.ID)
		}
		ids[m.ID] = true
	}
	for _, p := range d.Progressions {
		if !ids[p.SourceID] || !ids[p.TargetID] {
			return fmt.Errorf("%w: %d -> %d", ErrDanglingProgression, p.SourceID, p.TargetID)
		}
	}
	return nil
}

func copyScore(s *int) *int {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func rawStrings(ss []string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(ss))
	for _, s := range ss {
		b, _ := json.Marshal(s)
		out = append(out, b)
	}
	return out
}

func rawInts(ns []int) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(ns))
	for _, n := range ns {
		b, _ := json.Marshal(n)
		out = append(out, b)
	}
	return out
}
