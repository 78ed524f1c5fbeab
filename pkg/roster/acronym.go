package roster

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// singleWordRunes is how much of a one-word team name becomes its acronym.
const singleWordRunes = 3

// AssignAcronyms gives every team without an acronym a derived one that does
// not collide with any other team's.
//
// Supplied acronyms are claimed first, in team order, so a derived code never
// steals a code somebody typed into the sheet. A derived code that is already
// taken gets a numeric suffix starting at 0 ("ABC", "ABC0", "ABC1", ...).
//
// Supplied codes are kept even when two teams share one. Those codes are
// returned so the caller can warn about them.
func AssignAcronyms(teams []*Team) (duplicates []string) {
	taken := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.Acronym == "" {
			continue
		}
		if taken[t.Acronym] {
			duplicates = append(duplicates, t.Acronym)
		}
		taken[t.Acronym] = true
	}

	upper := cases.Upper(language.Und)
	for _, t := range teams {
		if t.Acronym != "" {
			continue
		}
		base := upper.String(DeriveAcronym(t.Name))
		code := base
		for i := 0; taken[code]; i++ {
			code = base + strconv.Itoa(i)
		}
		taken[code] = true
		t.Acronym = code
	}
	return duplicates
}

// DeriveAcronym returns the unsuffixed short code for a team name: the first
// letter of each word, or the first three letters of a single-word name.
// The name is NFC-normalized first so combining marks stay attached to their
// base letter. Case is left unchanged.
func DeriveAcronym(name string) string {
	words := strings.Fields(norm.NFC.String(name))
	switch len(words) {
	case 0:
		return ""
	case 1:
		return prefix(words[0], singleWordRunes)
	}

	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return b.String()
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
