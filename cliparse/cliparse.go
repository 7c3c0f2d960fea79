package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort             = 3318
	DefaultDatabaseType     = "postgres"
	DefaultGoodreadsURL     = "https://www.goodreads.com"
	DefaultGoodreadsTimeout = 5 * time.Second
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	GoodreadsKey     string
	GoodreadsURL     string
	GoodreadsTimeout time.Duration
	SessionDir       string
	SessionSecret    string
}

// ParseFlags reads flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("readwell", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.GoodreadsURL, "goodreads-url", "", "Goodreads API base URL")
	fs.DurationVar(&cfg.GoodreadsTimeout, "goodreads-timeout", 0, "Goodreads request timeout")
	fs.StringVar(&cfg.SessionDir, "session-dir", "", "Directory for session files")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GoodreadsKey, "goodreads-key", "", "Goodreads API key (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("invalid database type %q (postgres or sqlite)", cfg.DatabaseType)
	}

	if cfg.GoodreadsURL == "" {
		cfg.GoodreadsURL = os.Getenv("GOODREADS_URL")
		if cfg.GoodreadsURL == "" {
			cfg.GoodreadsURL = DefaultGoodreadsURL
		}
	}
	if cfg.GoodreadsTimeout == 0 {
		if s := os.Getenv("GOODREADS_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid GOODREADS_TIMEOUT env variable")
			}
			cfg.GoodreadsTimeout = d
		} else {
			cfg.GoodreadsTimeout = DefaultGoodreadsTimeout
		}
	}

	if cfg.SessionDir == "" {
		cfg.SessionDir = os.Getenv("SESSION_DIR")
	}

	// Secrets - the API key MUST be provided
	if cfg.GoodreadsKey == "" {
		cfg.GoodreadsKey = os.Getenv("GOODREADS_API_KEY")
	}
	if cfg.GoodreadsKey == "" {
		return Config{}, errors.New("GOODREADS_API_KEY is not set")
	}

	// Optional; main generates one per process when empty
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}

	return cfg, nil
}
