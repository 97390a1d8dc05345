package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

const (
	DefaultPort       = 3318
	DefaultAnalyzeURL = "https://mmmreach-production.up.railway.app/api/analyze"
)

type Config struct {
	Port         int
	AnalyzeURL   string
	DatabaseURL  string
	DatabaseType string
}

// AuditEnabled reports whether submissions are recorded to a database
func (c Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("mmm-reach", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.AnalyzeURL, "api", "", "Analysis service endpoint URL")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Submission audit database URL (optional)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

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
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.AnalyzeURL == "" {
		cfg.AnalyzeURL = os.Getenv("ANALYZE_API_URL")
	}
	if cfg.AnalyzeURL == "" {
		cfg.AnalyzeURL = DefaultAnalyzeURL
	}
	u, err := url.Parse(cfg.AnalyzeURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("invalid analysis endpoint %q: must be an absolute http(s) URL", cfg.AnalyzeURL)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	return cfg, nil
}
