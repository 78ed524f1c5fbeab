package roster

import (
	"reflect"
	"testing"
)

func TestDeriveAcronym(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Blue Moon", "BM"},
		{"the quick brown fox", "tqbf"},
		{"  spaced   out  ", "so"},
		{"Phoenix", "Pho"},
		{"Ox", "Ox"},
		{"Ümlaut Über", "ÜÜ"},
		{"日本語チーム", "日本語"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeriveAcronym(tt.name); got != tt.want {
			t.Errorf("DeriveAcronym(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAssignAcronyms(t *testing.T) {
	teams := []*Team{
		{Name: "Blue Moon"},
		{Name: "Big Mac"},
		{Name: "Bright Morning"},
		{Name: "phoenix"},
		{Name: "Phoenix Hawks", Acronym: "PHO"},
		{Name: "Black Magic", Acronym: "BM0"},
	}
	dupes := AssignAcronyms(teams)
	if len(dupes) != 0 {
		t.Errorf("duplicates = %v, want none", dupes)
	}

	got := make([]string, len(teams))
	for i, team := range teams {
		got[i] = team.Acronym
	}
	// Supplied PHO and BM0 are claimed before derivation starts.
	want := []string{"BM", "BM1", "BM2", "PHO0", "PHO", "BM0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("acronyms = %v, want %v", got, want)
	}
}

func TestAssignAcronymsUnique(t *testing.T) {
	var teams []*Team
	for i := 0; i < 15; i++ {
		teams = append(teams, &Team{Name: "Same Name"})
	}
	AssignAcronyms(teams)

	seen := map[string]bool{}
	for _, team := range teams {
		if seen[team.Acronym] {
			t.Fatalf("duplicate acronym %q", team.Acronym)
		}
		seen[team.Acronym] = true
	}
	if teams[0].Acronym != "SN" || teams[1].Acronym != "SN0" || teams[14].Acronym != "SN13" {
		t.Errorf("unexpected sequence: %q %q %q", teams[0].Acronym, teams[1].Acronym, teams[14].Acronym)
	}
}

func TestAssignAcronymsReportsSuppliedDuplicates(t *testing.T) {
	teams := []*Team{
		{Name: "One", Acronym: "X"},
		{Name: "Two", Acronym: "X"},
		{Name: "Xylophone X"},
	}
	dupes := AssignAcronyms(teams)
	if !reflect.DeepEqual(dupes, []string{"X"}) {
		t.Errorf("duplicates = %v", dupes)
	}
	if teams[0].Acronym != "X" || teams[1].Acronym != "X" {
		t.Error("supplied acronyms must be kept")
	}
	if teams[2].Acronym != "XX" {
		t.Errorf("derived = %q, want XX", teams[2].Acronym)
	}
}
