package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/matzehuels/bracketmaker/pkg/cache"
	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
	"github.com/matzehuels/bracketmaker/pkg/observability"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// TeamsResult is the outcome of importing a roster sheet.
type TeamsResult struct {
	Teams      []roster.Record `json:"teams"`
	Players    int             `json:"players"`
	Skipped    []int           `json:"skipped_lines,omitempty"`
	Duplicates []string        `json:"duplicate_acronyms,omitempty"`
}

// TeamsWithCacheInfo builds team records from CSV data and reports whether
// they came from the cache. Read failures and bad columns are
// INVALID_ROSTER errors.
func (r *Runner) TeamsWithCacheInfo(ctx context.Context, data []byte, cols roster.Columns) (*TeamsResult, bool, error) {
	if err := cols.Validate(); err != nil {
		return nil, false, bmerrors.Classify(err)
	}

	key := r.Keyer.RosterKey(cache.Hash(data), [4]int{cols.ID, cols.Name, cols.Team, cols.Acronym})
	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var res TeamsResult
		if err := json.Unmarshal(cached, &res); err == nil {
			observability.Cache().OnCacheHit(ctx, "roster")
			return &res, true, nil
		}
	} else if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "roster")

	ros, err := roster.Load(bytes.NewReader(data), cols)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidColumns) {
			return nil, false, bmerrors.Classify(err)
		}
		return nil, false, bmerrors.Wrap(bmerrors.ErrCodeInvalidRoster, err, "unreadable roster")
	}
	records, dupes := roster.Build(ros)
	for _, code := range dupes {
		r.Logger.Warn("acronym used by more than one team", "acronym", code)
	}
	if len(ros.Skipped) > 0 {
		r.Logger.Debug("skipped roster rows", "lines", ros.Skipped)
	}

	res := &TeamsResult{
		Teams:      records,
		Players:    ros.Players(),
		Skipped:    ros.Skipped,
		Duplicates: dupes,
	}
	if encoded, err := json.Marshal(res); err == nil {
		r.store(ctx, "roster", key, encoded, cache.TTLRoster, r.Logger)
	}
	return res, false, nil
}

// Teams is TeamsWithCacheInfo without the cache hit info.
func (r *Runner) Teams(ctx context.Context, data []byte, cols roster.Columns) (*TeamsResult, error) {
	res, _, err := r.TeamsWithCacheInfo(ctx, data, cols)
	return res, err
}
