// Package pipeline runs bracket generation and rendering for the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: build and link the bracket for a capacity and wrap it in a
//     ladder document (with team records when supplied)
//  2. Render: turn the document into json, dot, svg or png
//
// Each stage is cached through a [cache.Cache] using keys from a
// [cache.Keyer], so repeated requests for the same capacity and options cost
// one cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Capacity: 16,
//	    Formats:  []string{"json", "svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/cache"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Formats lists every supported output format in a stable order.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatJSON: ".json",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Capacity int                  `json:"capacity"`
	Lenient  bool                 `json:"lenient,omitempty"`
	Layout   bracket.LayoutConfig `json:"layout,omitempty"`
	Date     string               `json:"date,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed node labels in dot/svg/png

	// Teams are written into the document's Teams array.
	Teams []roster.Record `json:"-"`

	// Refresh bypasses cached documents. Rendered artifacts are keyed by
	// document content and are still reused.
	Refresh bool `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := bracket.CheckLimit(o.Capacity); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Date == "" {
		o.Date = bracket.DefaultDate
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// BracketOptions converts to generator options. Skipped edges in lenient
// mode are logged at warn level.
func (o *Options) BracketOptions() bracket.Options {
	logger := o.Logger
	return bracket.Options{
		Lenient: o.Lenient,
		Layout:  o.Layout,
		Date:    o.Date,
		Logger: func(msg string, args ...any) {
			if logger != nil {
				logger.Warnf(msg, args...)
			}
		},
	}
}

// BracketKeyOpts returns the cache key inputs for the generated document.
func (o *Options) BracketKeyOpts() cache.BracketKeyOpts {
	k := cache.BracketKeyOpts{
		Capacity: o.Capacity,
		Lenient:  o.Lenient,
		OffsetX:  o.Layout.BlockOffsetX,
		OffsetY:  o.Layout.BlockOffsetY,
		WinnersY: o.Layout.WinnersY,
		Date:     o.Date,
	}
	if len(o.Teams) > 0 {
		data, _ := json.Marshal(o.Teams)
		k.Teams = cache.Hash(data)
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	Document  ladder.Document
	DocHash   string // SHA-256 of the JSON document
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Matches      int
	Progressions int
	Teams        int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // document came from cache
	RenderHit   bool // every artifact came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return bmerrors.New(bmerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, lowercases and de-duplicates
// it, and validates every entry. An empty list yields json.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []string{FormatJSON}
	}
	return out, nil
}

func describe(opts Options) string {
	mode := "strict"
	if opts.Lenient {
		mode = "lenient"
	}
	return fmt.Sprintf("capacity %d (%s)", opts.Capacity, mode)
}
