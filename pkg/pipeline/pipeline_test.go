package pipeline

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/cache"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/observability"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !bmerrors.Is(err, bmerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, bmerrors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"", []string{"json"}, false},
		{"svg", []string{"svg"}, false},
		{"JSON, svg ,json,,png", []string{"json", "svg", "png"}, false},
		{"dot,pdf", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Capacity: 8}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatJSON}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Layout != bracket.DefaultLayoutConfig() {
		t.Errorf("Layout = %+v", opts.Layout)
	}
	if opts.Date != bracket.DefaultDate || opts.Logger == nil {
		t.Error("Date and Logger defaults not applied")
	}

	bad := Options{Capacity: 12}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, bracket.ErrInvalidCapacity) {
		t.Errorf("error = %v, want ErrInvalidCapacity", err)
	}
	tooLarge := Options{Capacity: bracket.MaxCapacity * 2}
	if err := tooLarge.ValidateAndSetDefaults(); !errors.Is(err, bracket.ErrInvalidCapacity) {
		t.Errorf("capacity %d: error = %v, want ErrInvalidCapacity", tooLarge.Capacity, err)
	}
	single := Options{Capacity: 1}
	if err := single.ValidateAndSetDefaults(); err != nil {
		t.Errorf("capacity 1: %v", err)
	}
	badFormat := Options{Capacity: 8, Formats: []string{"gif"}}
	if err := badFormat.ValidateAndSetDefaults(); err == nil {
		t.Error("expected format error")
	}
}

func TestBracketKeyOpts(t *testing.T) {
	a := Options{Capacity: 8}
	b := Options{Capacity: 8, Teams: []roster.Record{{FullName: "Larks"}}}
	if a.BracketKeyOpts().Teams != "" {
		t.Error("no teams should leave the teams hash empty")
	}
	if b.BracketKeyOpts().Teams == "" {
		t.Error("teams should change the key")
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestRunnerGenerateCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	doc, hit, err := r.GenerateWithCacheInfo(ctx, Options{Capacity: 8})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if len(doc.Matches) != 13 || len(doc.Progressions) != 17 {
		t.Errorf("got %d matches, %d edges", len(doc.Matches), len(doc.Progressions))
	}

	again, hit, err := r.GenerateWithCacheInfo(ctx, Options{Capacity: 8})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if !hit {
		t.Error("second call should hit the cache")
	}
	if !reflect.DeepEqual(doc, again) {
		t.Error("cached document differs from generated one")
	}

	_, hit, err = r.GenerateWithCacheInfo(ctx, Options{Capacity: 8, Refresh: true})
	if err != nil || hit {
		t.Errorf("refresh: hit %v, err %v", hit, err)
	}
}

func TestRunnerGenerateStrictFailure(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Generate(context.Background(), Options{Capacity: 32})
	if !errors.Is(err, bracket.ErrUnlinkedSlot) {
		t.Errorf("error = %v, want ErrUnlinkedSlot", err)
	}

	doc, err := r.Generate(context.Background(), Options{Capacity: 32, Lenient: true})
	if err != nil {
		t.Fatalf("lenient: %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("lenient document invalid: %v", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	teams := []roster.Record{roster.NewRecord(&roster.Team{Name: "Larks", Acronym: "LAR"})}
	opts := Options{Capacity: 4, Formats: []string{FormatJSON, FormatDOT}, Teams: teams}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.GenerateHit || res.CacheInfo.RenderHit {
		t.Errorf("first run reported cache hits: %+v", res.CacheInfo)
	}
	if res.Stats.Matches != 5 || res.Stats.Progressions != 5 || res.Stats.Teams != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.DocHash != cache.Hash(res.Artifacts[FormatJSON]) {
		t.Error("DocHash should hash the json artifact")
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte("m1 -> m4;")) {
		t.Errorf("dot artifact: %s", res.Artifacts[FormatDOT])
	}

	doc, err := ladder.Read(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact unreadable: %v", err)
	}
	if len(doc.Teams) != 1 || doc.Teams[0].Acronym != "LAR" {
		t.Errorf("teams = %+v", doc.Teams)
	}

	res2, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !res2.CacheInfo.GenerateHit || !res2.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v", res2.CacheInfo)
	}
	if !bytes.Equal(res.Artifacts[FormatDOT], res2.Artifacts[FormatDOT]) {
		t.Error("cached dot differs")
	}
}

func TestRunnerRenderSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	doc, err := r.Generate(ctx, Options{Capacity: 4})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := r.Render(ctx, doc, Options{Formats: []string{FormatSVG, FormatDOT}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing <svg")
	}
	if len(artifacts) != 2 {
		t.Errorf("got %d artifacts", len(artifacts))
	}
}

func TestRenderFormatUnknown(t *testing.T) {
	if _, err := RenderFormat(context.Background(), ladder.Document{}, "gif", Options{}); err == nil {
		t.Error("expected error")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu        sync.Mutex
	generated int
	rendered  int
	hits      map[string]int
}

func (h *countingHooks) OnGenerateComplete(_ context.Context, _, _, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.generated++
}

func (h *countingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rendered++
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func TestRunnerFiresHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &countingHooks{hits: map[string]int{}}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)

	r := newFileRunner(t)
	opts := Options{Capacity: 4, Formats: []string{FormatDOT}}
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}

	if h.generated != 1 || h.rendered != 1 {
		t.Errorf("generated %d, rendered %d; want 1 each", h.generated, h.rendered)
	}
	if h.hits["bracket"] != 1 || h.hits["artifact"] != 1 {
		t.Errorf("hits = %v", h.hits)
	}
}

const teamsCSV = `ts,mail,x,y,z,id,name,tag,team
note,,,,,,,,
1,a@x,,,,11,Ann,,Night Owls
2,b@x,,,,12,Bob,,Larks
3,c@x,,,,13,Cid,,Night Owls
`

func TestRunnerTeams(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	res, hit, err := r.TeamsWithCacheInfo(ctx, []byte(teamsCSV), roster.DefaultColumns())
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if hit {
		t.Error("first import should miss")
	}
	if len(res.Teams) != 2 || res.Players != 3 {
		t.Fatalf("got %d teams, %d players", len(res.Teams), res.Players)
	}
	if res.Teams[0].Acronym != "NO" || res.Teams[1].Acronym != "LAR" {
		t.Errorf("acronyms = %q, %q", res.Teams[0].Acronym, res.Teams[1].Acronym)
	}
	if !reflect.DeepEqual(res.Skipped, []int{1, 2}) {
		t.Errorf("Skipped = %v", res.Skipped)
	}

	again, hit, err := r.TeamsWithCacheInfo(ctx, []byte(teamsCSV), roster.DefaultColumns())
	if err != nil || !hit {
		t.Fatalf("second import: hit %v, err %v", hit, err)
	}
	if !reflect.DeepEqual(res, again) {
		t.Error("cached result differs")
	}

	// Different columns must not reuse the cached entry.
	cols := roster.DefaultColumns()
	cols.Acronym = 7
	if _, hit, _ := r.TeamsWithCacheInfo(ctx, []byte(teamsCSV), cols); hit {
		t.Error("column change should miss")
	}
}

func TestRunnerTeamsErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	_, err := r.Teams(context.Background(), []byte(teamsCSV), roster.Columns{ID: -1, Name: 1, Team: 2})
	if !bmerrors.Is(err, bmerrors.ErrCodeInvalidRoster) {
		t.Errorf("bad columns: code = %v", bmerrors.GetCode(err))
	}

	res, err := r.Teams(context.Background(), nil, roster.DefaultColumns())
	if err != nil || len(res.Teams) != 0 {
		t.Errorf("empty sheet: %+v, %v", res, err)
	}
}

func TestRunnerTTLOverride(t *testing.T) {
	mem := &recordingCache{Cache: cache.NewNullCache()}
	r := NewRunner(mem, nil, nil)
	r.TTL = time.Minute

	if _, err := r.Generate(context.Background(), Options{Capacity: 2}); err != nil {
		t.Fatal(err)
	}
	if len(mem.ttls) != 1 || mem.ttls[0] != time.Minute {
		t.Errorf("ttls = %v", mem.ttls)
	}
}

type recordingCache struct {
	cache.Cache
	ttls []time.Duration
}

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttls = append(c.ttls, ttl)
	return nil
}
