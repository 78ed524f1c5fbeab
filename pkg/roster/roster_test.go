package roster

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sheet = `Timestamp,Email,Discord,Timezone,Notes,User ID,Username,Rank,Team
2023-03-01,a@x,a#1,UTC,,1001,alpha,12,Blue Moon
2023-03-01,b@x,b#2,UTC,,1002,bravo,40,Blue Moon
2023-03-02,c@x,c#3,UTC,,not-a-number,charlie,8,Red
2023-03-02,d@x,d#4,UTC,, 1004 ,delta,9,Red
too,short
2023-03-03,e@x,e#5,UTC,,1005,echo,77,
2023-03-04,f@x,f#6,UTC,,1006,foxtrot,3,Blue Moon
`

func TestLoad(t *testing.T) {
	r, err := Load(strings.NewReader(sheet), DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(r.Teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(r.Teams))
	}
	blue, red := r.Teams[0], r.Teams[1]
	if blue.Name != "Blue Moon" || red.Name != "Red" {
		t.Errorf("team order = %q, %q", blue.Name, red.Name)
	}

	wantBlue := []Player{{1001, "alpha"}, {1002, "bravo"}, {1006, "foxtrot"}}
	if !reflect.DeepEqual(blue.Players, wantBlue) {
		t.Errorf("Blue Moon players = %v, want %v", blue.Players, wantBlue)
	}
	wantRed := []Player{{1004, "delta"}}
	if !reflect.DeepEqual(red.Players, wantRed) {
		t.Errorf("Red players = %v, want %v", red.Players, wantRed)
	}

	if want := []int{1, 4, 6, 7}; !reflect.DeepEqual(r.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", r.Skipped, want)
	}
	if got := r.Players(); got != 4 {
		t.Errorf("Players() = %d, want 4", got)
	}
}

func TestLoadSkippedLinesFollowTheFile(t *testing.T) {
	const multiline = `Timestamp,Email,Discord,Timezone,Notes,User ID,Username,Rank,Team
2023-03-01,a@x,a#1,UTC,"plays late
weekdays only",1001,alpha,12,Blue Moon

2023-03-02,c@x,c#3,UTC,,not-a-number,charlie,8,Red
2023-03-03,d@x,d#4,UTC,,1004,delta,9,Red
`
	r, err := Load(strings.NewReader(multiline), DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []int{1, 5}; !reflect.DeepEqual(r.Skipped, want) {
		t.Errorf("Skipped = %v, want %v", r.Skipped, want)
	}
	if r.Players() != 2 {
		t.Errorf("Players() = %d, want 2", r.Players())
	}
}

func TestLoadNonNumericRowExcluded(t *testing.T) {
	r, err := Load(strings.NewReader(sheet), DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, team := range r.Teams {
		for _, p := range team.Players {
			if p.Name == "charlie" {
				t.Errorf("row with non-numeric id landed in %q", team.Name)
			}
		}
	}
}

func TestLoadCustomColumns(t *testing.T) {
	in := "id,name,team,tag\n7,g,Green Giants,GG\n8,h,Green Giants,XX\n9,i,Solo,\n"
	r, err := Load(strings.NewReader(in), Columns{ID: 0, Name: 1, Team: 2, Acronym: 3})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	gg, ok := r.Team("Green Giants")
	if !ok {
		t.Fatal("Green Giants missing")
	}
	if gg.Acronym != "GG" {
		t.Errorf("acronym = %q, want first supplied value GG", gg.Acronym)
	}
	solo, _ := r.Team("Solo")
	if solo.Acronym != "" {
		t.Errorf("Solo acronym = %q, want empty", solo.Acronym)
	}
	if _, ok := r.Team("Nobody"); ok {
		t.Error("Team(Nobody) should miss")
	}
}

func TestLoadInvalidColumns(t *testing.T) {
	_, err := Load(strings.NewReader(""), Columns{ID: -1, Name: 1, Team: 2})
	if !errors.Is(err, ErrInvalidColumns) {
		t.Errorf("error = %v, want ErrInvalidColumns", err)
	}
}

func TestLoadEmpty(t *testing.T) {
	r, err := Load(strings.NewReader(""), DefaultColumns())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Teams) != 0 || len(r.Skipped) != 0 {
		t.Errorf("got %+v", r)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.csv")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadFile(path, DefaultColumns())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(r.Teams) != 2 {
		t.Errorf("got %d teams", len(r.Teams))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultColumns()); err == nil {
		t.Error("expected error for missing file")
	}
}
