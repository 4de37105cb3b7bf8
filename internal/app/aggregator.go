package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"guest_reviews/internal/adapters/observability"
	"guest_reviews/internal/domain"
)

// LiveDataAdvisory is surfaced when no live source could be loaded.
const LiveDataAdvisory = "Failed to load reviews from live sources. Using local data."

type SourceWarning struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

type Aggregation struct {
	Reviews  []domain.Review `json:"reviews"`
	Warnings []SourceWarning `json:"warnings,omitempty"`
	Advisory string          `json:"advisory,omitempty"`
}

// WarningMessages flattens warnings for view-models.
func (a Aggregation) WarningMessages() []string {
	if len(a.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(a.Warnings))
	for _, w := range a.Warnings {
		out = append(out, w.Source+": "+w.Error)
	}
	return out
}

type Aggregator struct {
	workers int
}

func NewAggregator(workers int) *Aggregator {
	if workers <= 0 {
		workers = 4
	}
	return &Aggregator{workers: workers}
}

type fetchResult struct {
	reviews []domain.Review
	err     error
}

// Aggregate fetches all sources concurrently and merges them in the given
// priority order: a record from a later source is dropped when an earlier
// record already holds its id. A failing source never aborts the merge.
func (a *Aggregator) Aggregate(ctx context.Context, sources ...domain.ReviewSource) Aggregation {
	results := make([]fetchResult, len(sources))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			revs, err := src.Fetch(ctx)
			observability.ObserveSource(src.Name(), sourceOutcome(err), len(revs), time.Since(start))
			results[i] = fetchResult{reviews: revs, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var out Aggregation
	seen := make(map[string]struct{})
	live, liveFailed := 0, 0
	for i, src := range sources {
		res := results[i]
		if src.Name() != SourceNameSeed {
			live++
		}
		if res.err != nil {
			if errors.Is(res.err, domain.ErrPlaceNotFound) {
				// resolution miss: empty contribution, not a failure
				log.Info().Str("source", src.Name()).Msg("place not found; source contributes no reviews")
				continue
			}
			if src.Name() != SourceNameSeed {
				liveFailed++
			}
			log.Warn().Str("source", src.Name()).Err(res.err).Msg("source fetch failed")
			out.Warnings = append(out.Warnings, SourceWarning{Source: src.Name(), Error: res.err.Error()})
			continue
		}
		for _, r := range res.reviews {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out.Reviews = append(out.Reviews, r)
		}
	}
	if live > 0 && liveFailed == live {
		out.Advisory = LiveDataAdvisory
	}
	if out.Reviews == nil {
		out.Reviews = []domain.Review{}
	}
	return out
}

func sourceOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrPlaceNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrBadUpstreamFormat):
		return "bad_format"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
