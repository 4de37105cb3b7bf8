package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	HostawayBase      string
	HostawayAccountID string
	HostawayKey       string

	GoogleBase         string
	GoogleKey          string
	GooglePlaceName    string
	GooglePlaceAddress string

	UpstreamRPS     int
	UpstreamTimeout time.Duration
	FetchWorkers    int

	SeedFile string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	PageSize int
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("var", k).Str("value", v).Msg("not an integer; using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),

		HostawayBase:      env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayAccountID: env("HOSTAWAY_ACCOUNT_ID", ""),
		HostawayKey:       env("HOSTAWAY_API_KEY", ""),

		GoogleBase:         env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		GoogleKey:          env("GOOGLE_API_KEY", ""),
		GooglePlaceName:    env("GOOGLE_PLACE_NAME", "The Ritz London"),
		GooglePlaceAddress: env("GOOGLE_PLACE_ADDRESS", "150 Piccadilly, St. James's, London W1J 9BR, United Kingdom"),

		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 20)) * time.Second,
		FetchWorkers:    atoi("FETCH_WORKERS", 4),

		SeedFile: env("SEED_FILE", ""),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		PageSize: atoi("PAGE_SIZE", 6),
	}
	if c.HostawayKey == "" {
		log.Warn().Msg("HOSTAWAY_API_KEY is empty; serving the bundled demo payload")
	} else if c.HostawayAccountID == "" {
		log.Warn().Msg("HOSTAWAY_ACCOUNT_ID is empty")
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_API_KEY is empty; google reviews disabled")
	}
	return c
}

// HostawayLive reports whether real Hostaway credentials are configured.
func (c Config) HostawayLive() bool { return c.HostawayKey != "" && c.HostawayAccountID != "" }

func (c Config) GoogleEnabled() bool { return c.GoogleKey != "" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
