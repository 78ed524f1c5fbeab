// Package roster reads team sign-up sheets and turns them into the team
// records a ladder editor imports.
//
// A sheet is a CSV export with one participant per row. [Load] groups rows by
// team name, [AssignAcronyms] gives every team a unique short code and
// [Records] builds the serialized form.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidColumns is returned when a [Columns] value cannot address a sheet.
var ErrInvalidColumns = errors.New("invalid roster columns")

// Columns holds the zero-based CSV column of each field. Acronym is optional;
// a negative value means the sheet has no acronym column.
type Columns struct {
	ID      int `toml:"id" json:"id"`
	Name    int `toml:"name" json:"name"`
	Team    int `toml:"team" json:"team"`
	Acronym int `toml:"acronym" json:"acronym"`
}

// DefaultColumns matches the sign-up sheet export the tool was first written
// for: participant id in F, display name in G, team in I.
func DefaultColumns() Columns {
	return Columns{ID: 5, Name: 6, Team: 8, Acronym: -1}
}

// Validate reports whether the required columns are set.
func (c Columns) Validate() error {
	if c.ID < 0 || c.Name < 0 || c.Team < 0 {
		return fmt.Errorf("%w: id, name and team must be >= 0, got %d/%d/%d", ErrInvalidColumns, c.ID, c.Name, c.Team)
	}
	return nil
}

func (c Columns) width() int {
	return max(c.ID, c.Name, c.Team, c.Acronym) + 1
}

// Player is one participant.
type Player struct {
	ID   int
	Name string
}

// Team is a named group of players. Acronym is empty until supplied by the
// sheet or assigned by [AssignAcronyms].
type Team struct {
	Name    string
	Acronym string
	Players []Player
}

// Roster is the result of [Load]. Teams appear in the order their first
// player appears in the sheet.
type Roster struct {
	Teams []*Team

	// Skipped lists the 1-based line numbers of rows that were ignored
	// because their id was not an integer, the row was too short or the
	// team was empty. A row with a multi-line quoted cell is reported at the
	// line it starts on.
	Skipped []int
}

// Team returns the team with the given name.
func (r *Roster) Team(name string) (*Team, bool) {
	for _, t := range r.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Players returns the total number of players across all teams.
func (r *Roster) Players() int {
	n := 0
	for _, t := range r.Teams {
		n += len(t.Players)
	}
	return n
}

// LoadFile reads a roster from a CSV file.
func LoadFile(path string, cols Columns) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, cols)
}

// Load reads CSV rows from r.
//
// Rows whose id cell does not parse as an integer are header or note rows and
// are skipped, as are rows too short to reach every configured column or
// with an empty team name. Skipping is never an error; the line numbers are
// recorded in [Roster.Skipped]. Errors are returned only for unreadable input.
func Load(r io.Reader, cols Columns) (*Roster, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	out := &Roster{}
	byName := make(map[string]*Team)
	width := cols.width()

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(row) < width {
			out.Skipped = append(out.Skipped, line)
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[cols.ID]))
		if err != nil {
			out.Skipped = append(out.Skipped, line)
			continue
		}
		teamName := strings.TrimSpace(row[cols.Team])
		if teamName == "" {
			out.Skipped = append(out.Skipped, line)
			continue
		}

		t, ok := byName[teamName]
		if !ok {
			t = &Team{Name: teamName}
			byName[teamName] = t
			out.Teams = append(out.Teams, t)
		}
		if cols.Acronym >= 0 && t.Acronym == "" {
			t.Acronym = strings.TrimSpace(row[cols.Acronym])
		}
		t.Players = append(t.Players, Player{ID: id, Name: strings.TrimSpace(row[cols.Name])})
	}
	return out, nil
}
