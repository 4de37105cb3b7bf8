package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"guest_reviews/internal/adapters/observability"
	"guest_reviews/internal/domain"
)

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// ReviewService owns the write side: loading the collection from sources
// and moderating individual reviews.
type ReviewService struct {
	store   *ReviewStore
	agg     *Aggregator
	sources []domain.ReviewSource

	refreshMu sync.Mutex
}

// NewReviewService takes sources in merge priority order, most authoritative first.
func NewReviewService(store *ReviewStore, agg *Aggregator, sources ...domain.ReviewSource) *ReviewService {
	return &ReviewService{store: store, agg: agg, sources: sources}
}

// Load aggregates every source and replaces the collection. Cached fetches
// are reused; use Refresh to force upstream calls.
func (s *ReviewService) Load(ctx context.Context) (Aggregation, error) {
	return s.load(ctx, false)
}

// Refresh drops cached source fetches, then loads.
func (s *ReviewService) Refresh(ctx context.Context) (Aggregation, error) {
	return s.load(ctx, true)
}

func (s *ReviewService) load(ctx context.Context, invalidate bool) (Aggregation, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	if invalidate {
		for _, src := range s.sources {
			inv, ok := src.(invalidator)
			if !ok {
				continue
			}
			if err := inv.Invalidate(ctx); err != nil {
				log.Warn().Err(err).Str("source", src.Name()).Msg("cache invalidate failed")
			}
		}
	}

	agg := s.agg.Aggregate(ctx, s.sources...)
	if err := ctx.Err(); err != nil {
		// a cancelled load may hold partial results; keep the previous collection
		return Aggregation{}, err
	}
	s.store.Replace(agg)

	log.Info().
		Int("reviews", len(agg.Reviews)).
		Int("warnings", len(agg.Warnings)).
		Bool("advisory", agg.Advisory != "").
		Uint64("revision", s.store.Revision()).
		Dur("took", time.Since(start)).
		Msg("reviews loaded")
	return agg, nil
}

func (s *ReviewService) Approve(id string) (domain.Review, error) {
	return s.transition(id, domain.StatusApproved)
}

func (s *ReviewService) Deny(id string) (domain.Review, error) {
	return s.transition(id, domain.StatusDenied)
}

func (s *ReviewService) transition(id string, to domain.Status) (domain.Review, error) {
	r, err := s.store.SetStatus(id, to)
	if err != nil {
		return domain.Review{}, err
	}
	observability.ObserveTransition(string(to))
	log.Info().Str("id", id).Str("status", string(to)).Str("listing", r.ListingName).Msg("review status changed")
	return r, nil
}
