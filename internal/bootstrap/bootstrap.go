// Package bootstrap wires configuration into sources, cache and services.
// Both binaries build their dependencies here.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"guest_reviews/internal/adapters/google"
	"guest_reviews/internal/adapters/hostaway"
	"guest_reviews/internal/adapters/localcache"
	redisad "guest_reviews/internal/adapters/redis"
	"guest_reviews/internal/adapters/seed"
	"guest_reviews/internal/app"
	"guest_reviews/internal/domain"
	"guest_reviews/internal/shared"
)

type Deps struct {
	Store    *app.ReviewStore
	Queries  *app.QueryService
	Commands *app.ReviewService
	Cache    domain.Cache

	closers []func() error
}

func (d *Deps) Close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

// Build assembles the dependency graph. It does not load reviews.
func Build(ctx context.Context, cfg shared.Config) (*Deps, error) {
	d := &Deps{}

	cache, err := buildCache(ctx, cfg, d)
	if err != nil {
		return nil, err
	}
	d.Cache = cache

	sources, err := BuildSources(cfg, cache)
	if err != nil {
		return nil, err
	}

	d.Store = app.NewReviewStore()
	d.Queries = app.NewQueryService(d.Store, cfg.PageSize)
	d.Commands = app.NewReviewService(d.Store, app.NewAggregator(cfg.FetchWorkers), sources...)
	return d, nil
}

func buildCache(ctx context.Context, cfg shared.Config, d *Deps) (domain.Cache, error) {
	if cfg.RedisAddr == "" {
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("using in-process source cache")
		return localcache.New(cfg.CacheTTL), nil
	}
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	d.closers = append(d.closers, rc.Close)
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
	return rc, nil
}

// BuildSources returns sources in merge priority order: live sources first
// (cached), seed last.
func BuildSources(cfg shared.Config, cache domain.Cache) ([]domain.ReviewSource, error) {
	var sources []domain.ReviewSource

	var hc domain.HostawayClient = hostaway.FixtureClient{}
	if cfg.HostawayLive() {
		c, err := hostaway.New(cfg.HostawayBase, cfg.HostawayAccountID, cfg.HostawayKey, cfg.UpstreamTimeout, cfg.UpstreamRPS)
		if err != nil {
			return nil, err
		}
		hc = c
	}
	sources = append(sources, app.NewCachedSource(app.NewHostawaySource(hc), cache, cfg.CacheTTL))

	if cfg.GoogleEnabled() {
		gc, err := google.New(cfg.GoogleBase, cfg.GoogleKey, cfg.UpstreamTimeout, cfg.UpstreamRPS)
		if err != nil {
			return nil, err
		}
		gs := app.NewGoogleSource(gc, cfg.GooglePlaceName, cfg.GooglePlaceAddress)
		sources = append(sources, app.NewCachedSource(gs, cache, cfg.CacheTTL))
	}

	revs, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	sources = append(sources, app.NewSeedSource(revs))

	log.Info().
		Bool("hostaway_live", cfg.HostawayLive()).
		Bool("google", cfg.GoogleEnabled()).
		Int("seed", len(revs)).
		Msg("review sources configured")
	return sources, nil
}
