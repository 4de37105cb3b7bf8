package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"guest_reviews/internal/domain"
)

const (
	SourceNameHostaway = "hostaway"
	SourceNameGoogle   = "google"
	SourceNameSeed     = "seed"
)

type HostawaySource struct{ client domain.HostawayClient }

func NewHostawaySource(c domain.HostawayClient) *HostawaySource {
	return &HostawaySource{client: c}
}

func (s *HostawaySource) Name() string { return SourceNameHostaway }

func (s *HostawaySource) Fetch(ctx context.Context) ([]domain.Review, error) {
	body, err := s.client.GetReviews(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeHostaway(body)
}

// GoogleSource resolves one configured place and ingests its public reviews.
type GoogleSource struct {
	client  domain.PlacesClient
	name    string
	address string
}

func NewGoogleSource(c domain.PlacesClient, placeName, placeAddress string) *GoogleSource {
	return &GoogleSource{client: c, name: placeName, address: placeAddress}
}

func (s *GoogleSource) Name() string { return SourceNameGoogle }

func (s *GoogleSource) Fetch(ctx context.Context) ([]domain.Review, error) {
	input := strings.TrimSpace(s.name + " " + s.address)
	placeID, err := s.client.FindPlaceID(ctx, input)
	if err != nil {
		return nil, err
	}
	if placeID == "" {
		return nil, domain.ErrPlaceNotFound
	}
	revs, err := s.client.GetPlaceReviews(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return NormalizeGoogle(s.name, revs), nil
}

// SeedSource serves a static, already-normalized collection.
type SeedSource struct{ reviews []domain.Review }

func NewSeedSource(reviews []domain.Review) *SeedSource {
	return &SeedSource{reviews: NormalizeSeed(reviews)}
}

func (s *SeedSource) Name() string { return SourceNameSeed }

func (s *SeedSource) Fetch(ctx context.Context) ([]domain.Review, error) {
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out, nil
}

// CachedSource keeps the last successful fetch of a live source for ttl.
// Failures are never cached.
type CachedSource struct {
	inner domain.ReviewSource
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedSource(inner domain.ReviewSource, cache domain.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedSource) Name() string { return s.inner.Name() }

func (s *CachedSource) Fetch(ctx context.Context) ([]domain.Review, error) {
	key := sourceCacheKey(s.inner.Name())
	var cached []domain.Review
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("source cache read failed")
	} else if ok {
		return cached, nil
	}

	revs, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, revs, int(s.ttl.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("source cache write failed")
	}
	return revs, nil
}

// Invalidate drops the cached fetch so the next call reaches upstream.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, sourceCacheKey(s.inner.Name()))
}

func sourceCacheKey(name string) string {
	return fmt.Sprintf("source:%s", name)
}
