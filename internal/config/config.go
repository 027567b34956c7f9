package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	GeoSystemAddress       string
	GeoCacheAddr           string
	RankingRefreshInterval time.Duration
	GeoWarmWorkers         int
	ShutdownTimeout        time.Duration
	StoreIDSpace           int64
	StoreIDMaxAttempts     int
}

const (
	defaultRunAddress             = ":8080"
	defaultGeoSystemAddress       = "https://nominatim.openstreetmap.org"
	defaultRankingRefreshInterval = 30 * time.Second
	defaultGeoWarmWorkers         = 4
	defaultShutdownTimeout        = 10 * time.Second
	defaultStoreIDSpace           = 100000
	defaultStoreIDMaxAttempts     = 1000
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		GeoSystemAddress:       getString(lookup, "GEO_SYSTEM_ADDRESS", defaultGeoSystemAddress),
		GeoCacheAddr:           getString(lookup, "GEO_CACHE_ADDR", ""),
		RankingRefreshInterval: getDuration(lookup, "RANKING_REFRESH_INTERVAL", defaultRankingRefreshInterval),
		GeoWarmWorkers:         getInt(lookup, "GEO_WARM_WORKERS", defaultGeoWarmWorkers),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		StoreIDSpace:           getInt64(lookup, "STORE_ID_SPACE", defaultStoreIDSpace),
		StoreIDMaxAttempts:     getInt(lookup, "STORE_ID_MAX_ATTEMPTS", defaultStoreIDMaxAttempts),
	}

	fs := flag.NewFlagSet("gazetka", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		refreshIntervalStr = cfg.RankingRefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GeoSystemAddress, "g", cfg.GeoSystemAddress, "Reverse geocoding service base URL")
	fs.StringVar(&cfg.GeoCacheAddr, "geo-cache", cfg.GeoCacheAddr, "Redis address for geo resolution cache (optional)")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between ranking cache refreshes")
	fs.IntVar(&cfg.GeoWarmWorkers, "warm-workers", cfg.GeoWarmWorkers, "Number of concurrent geo warm-up workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.Int64Var(&cfg.StoreIDSpace, "store-id-space", cfg.StoreIDSpace, "Upper bound of the store identifier range")
	fs.IntVar(&cfg.StoreIDMaxAttempts, "store-id-attempts", cfg.StoreIDMaxAttempts, "Maximum store identifier allocation attempts")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RankingRefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RankingRefreshInterval <= 0 {
		cfg.RankingRefreshInterval = defaultRankingRefreshInterval
	}

	if cfg.GeoWarmWorkers <= 0 {
		cfg.GeoWarmWorkers = defaultGeoWarmWorkers
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.StoreIDSpace <= 0 {
		cfg.StoreIDSpace = defaultStoreIDSpace
	}

	if cfg.StoreIDMaxAttempts <= 0 {
		cfg.StoreIDMaxAttempts = defaultStoreIDMaxAttempts
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GeoSystemAddress == "" {
		return nil, fmt.Errorf("geo system address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
