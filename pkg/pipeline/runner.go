package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/cache"
	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-entry cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer means DefaultKeyer, a nil cache
// disables caching, a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate then render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	doc, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Document = doc
	result.Stats.GenerateTime = time.Since(start)
	result.Stats.Matches = len(doc.Matches)
	result.Stats.Progressions = len(doc.Progressions)
	result.Stats.Teams = len(doc.Teams)
	result.CacheInfo.GenerateHit = hit

	r.Logger.Info("generated bracket",
		"capacity", opts.Capacity,
		"matches", len(doc.Matches),
		"progressions", len(doc.Progressions),
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit
	if data, ok := artifacts[FormatJSON]; ok {
		result.DocHash = cache.Hash(data)
	} else if data, err := ladder.Marshal(doc); err == nil {
		result.DocHash = cache.Hash(data)
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo returns the ladder document for opts and whether it
// came from the cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (ladder.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return ladder.Document{}, false, err
	}

	key := r.Keyer.BracketKey(opts.BracketKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			doc, err := ladder.Read(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "bracket")
				return doc, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached bracket", "err", err)
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "bracket")

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Capacity)
	start := time.Now()
	b, err := bracket.Generate(opts.Capacity, opts.BracketOptions())
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Capacity, 0, 0, time.Since(start), err)
		return ladder.Document{}, false, err
	}
	hooks.OnGenerateComplete(ctx, opts.Capacity, len(b.Matches), len(b.Progressions), time.Since(start), nil)
	opts.Logger.Debug("generated", "bracket", describe(opts), "stages", b.Stages())

	doc := ladder.FromBracket(b).WithTeams(opts.Teams)
	if data, err := ladder.Marshal(doc); err == nil {
		r.store(ctx, "bracket", key, data, cache.TTLBracket, opts.Logger)
	}
	return doc, false, nil
}

// Generate is GenerateWithCacheInfo without the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (ladder.Document, error) {
	doc, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return doc, err
}

// RenderWithCacheInfo renders every requested format of doc and reports
// whether all of them came from the cache. Missing formats are rendered
// concurrently.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc ladder.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	docData, err := ladder.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	docHash := cache.Hash(docData)
	if opts.Detailed {
		docHash += ":detailed"
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, format)
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range missing {
		g.Go(func() error {
			var data []byte
			var err error
			if format == FormatJSON {
				data = docData
			} else {
				data, err = RenderFormat(gctx, doc, format, opts)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for _, format := range missing {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(docHash, format), artifacts[format], cache.TTLArtifact, opts.Logger)
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, doc ladder.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
