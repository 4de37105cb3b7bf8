package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"guest_reviews/internal/bootstrap"
	"guest_reviews/internal/shared"
)

func baseConfig() shared.Config {
	return shared.Config{
		FetchWorkers:    2,
		UpstreamRPS:     100,
		UpstreamTimeout: time.Second,
		CacheTTL:        time.Minute,
		PageSize:        6,
		GooglePlaceName: "The Ritz London",
	}
}

func TestBuild_OfflineDefaults(t *testing.T) {
	ctx := context.Background()
	d, err := bootstrap.Build(ctx, baseConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer d.Close()

	agg, err := d.Commands.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// three guest reviews from the bundled hostaway payload, then fifteen seed reviews
	if len(agg.Reviews) != 18 {
		t.Fatalf("expected 18 reviews, got %d", len(agg.Reviews))
	}
	if agg.Reviews[0].ID != "7454" {
		t.Fatalf("hostaway reviews should come first: %+v", agg.Reviews[0])
	}
	if agg.Advisory != "" || len(agg.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", agg)
	}
	if st := d.Queries.Stats(); st.Pending != 6 {
		t.Fatalf("expected 3 seed + 3 hostaway pending, got %+v", st)
	}
}

func TestBuildSources_GoogleOnlyWithKey(t *testing.T) {
	cfg := baseConfig()
	d, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	srcs, err := bootstrap.BuildSources(cfg, d.Cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 2 {
		t.Fatalf("expected hostaway+seed, got %d", len(srcs))
	}

	cfg.GoogleKey = "k"
	srcs, err = bootstrap.BuildSources(cfg, d.Cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 3 || srcs[1].Name() != "google" {
		t.Fatalf("expected google in the middle, got %d sources", len(srcs))
	}
}

func TestBuild_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig()
	cfg.RedisAddr = mr.Addr()

	d, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer d.Close()
	if _, err := d.Commands.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !mr.Exists("guest_reviews:source:hostaway") {
		t.Fatalf("expected hostaway fetch cached in redis; keys=%v", mr.Keys())
	}
}

func TestBuild_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := baseConfig()
	cfg.RedisAddr = addr
	if _, err := bootstrap.Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
