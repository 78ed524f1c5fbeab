package roster

import "encoding/json"

// Defaults written into every record. The ladder editor overwrites them once
// seeding is done.
const (
	DefaultSeed            = "1"
	DefaultLastYearPlacing = 1
)

// Record is a team in the ladder editor's bracket.json schema.
type Record struct {
	FullName        string            `json:"FullName"`
	FlagName        string            `json:"FlagName"`
	Acronym         string            `json:"Acronym"`
	SeedingResults  []json.RawMessage `json:"SeedingResults"`
	Seed            string            `json:"Seed"`
	LastYearPlacing int               `json:"LastYearPlacing"`
	Players         []PlayerRef       `json:"Players"`
}

// PlayerRef is how a record refers to a participant.
type PlayerRef struct {
	ID int `json:"id"`
}

// NewRecord builds the record for t.
func NewRecord(t *Team) Record {
	players := make([]PlayerRef, len(t.Players))
	for i, p := range t.Players {
		players[i] = PlayerRef{ID: p.ID}
	}
	return Record{
		FullName:        t.Name,
		FlagName:        "",
		Acronym:         t.Acronym,
		SeedingResults:  []json.RawMessage{},
		Seed:            DefaultSeed,
		LastYearPlacing: DefaultLastYearPlacing,
		Players:         players,
	}
}

// Records builds one record per team, in order.
func Records(teams []*Team) []Record {
	out := make([]Record, len(teams))
	for i, t := range teams {
		out[i] = NewRecord(t)
	}
	return out
}

// Build assigns acronyms to r's teams in place and returns their records,
// along with any supplied acronym that more than one team uses.
func Build(r *Roster) ([]Record, []string) {
	dupes := AssignAcronyms(r.Teams)
	return Records(r.Teams), dupes
}
