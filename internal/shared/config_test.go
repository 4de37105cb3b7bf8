package shared_test

import (
	"testing"
	"time"

	"guest_reviews/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "HOSTAWAY_API_KEY", "GOOGLE_API_KEY", "REDIS_ADDR", "PAGE_SIZE", "CACHE_TTL_SECONDS"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.HTTPAddr != ":8080" || c.PageSize != 6 || c.CacheTTL != 300*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.HostawayLive() || c.GoogleEnabled() {
		t.Fatalf("no credentials should mean no live sources: %+v", c)
	}
	if c.GooglePlaceName != "The Ritz London" {
		t.Fatalf("place name: %q", c.GooglePlaceName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOSTAWAY_API_KEY", "k")
	t.Setenv("HOSTAWAY_ACCOUNT_ID", "61148")
	t.Setenv("GOOGLE_API_KEY", "g")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")
	t.Setenv("FETCH_WORKERS", "nope")
	t.Setenv("LOG_LEVEL", "debug")

	c := shared.Load()
	if !c.HostawayLive() || !c.GoogleEnabled() {
		t.Fatalf("expected live sources: %+v", c)
	}
	if c.PageSize != 10 || c.UpstreamTimeout != 3*time.Second || c.LogLevel != "debug" {
		t.Fatalf("unexpected: %+v", c)
	}
	if c.FetchWorkers != 4 {
		t.Fatalf("bad integer should fall back to default, got %d", c.FetchWorkers)
	}
}
