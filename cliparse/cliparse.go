package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	DatabaseURL   string
	SeedPath      string
	AdminPassword string
	AdminSecret   string
	AIEndpoint    string
	AIAPIKey      string
	AITimeout     time.Duration
	LogLevel      string
}

// AI proxy timeout bounds. The chat widget shows a spinner, so we keep
// the upstream on a hard leash and fall back to a canned answer.
const (
	DefaultAITimeout = 15 * time.Second
	MinAITimeout     = 12 * time.Second
	MaxAITimeout     = 28 * time.Second
)

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var aiTimeoutSec int

	fs := flag.NewFlagSet("commonkind", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "SQLite DSN (default in-memory)")
	fs.StringVar(&cfg.SeedPath, "seed", "", "Path to hub seed JSON")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin dashboard password (prefer env)")
	fs.StringVar(&cfg.AdminSecret, "admin-secret", "", "Machine reset secret (prefer env)")

	// AI proxy
	fs.StringVar(&cfg.AIEndpoint, "ai-endpoint", "", "Upstream generative-text endpoint")
	fs.StringVar(&cfg.AIAPIKey, "ai-key", "", "Upstream API key (prefer env)")
	fs.IntVar(&aiTimeoutSec, "ai-timeout", 0, "Upstream timeout in seconds")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

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
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = ":memory:"
	}

	if cfg.SeedPath == "" {
		cfg.SeedPath = os.Getenv("SEED_PATH")
	}
	if cfg.SeedPath == "" {
		cfg.SeedPath = "data/hubs.json"
	}

	// Admin password has a demo default, the reset secret does not:
	// without ADMIN_SECRET the machine reset endpoint stays closed.
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "commonkind"
	}
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	}

	if cfg.AIEndpoint == "" {
		cfg.AIEndpoint = os.Getenv("AI_ENDPOINT")
	}
	if cfg.AIAPIKey == "" {
		cfg.AIAPIKey = os.Getenv("AI_API_KEY")
	}

	if aiTimeoutSec == 0 {
		if s := os.Getenv("AI_TIMEOUT_SECONDS"); s != "" {
			sec, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid AI_TIMEOUT_SECONDS env variable")
			}
			aiTimeoutSec = sec
		}
	}
	cfg.AITimeout = clampAITimeout(aiTimeoutSec)

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func clampAITimeout(sec int) time.Duration {
	if sec == 0 {
		return DefaultAITimeout
	}
	d := time.Duration(sec) * time.Second
	if d < MinAITimeout {
		return MinAITimeout
	}
	if d > MaxAITimeout {
		return MaxAITimeout
	}
	return d
}
