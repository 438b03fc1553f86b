// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/axljndotdev/manito-manita/db"
)

const (
	DefaultPort     = 3318
	DefaultAdminPin = "ADMIN-2025"
	DefaultTokenTTL = 12 * time.Hour
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	AdminPin         string
	AdminTokenSecret string
	AdminTokenTTL    time.Duration
	LogLevel         slog.Level
	EnvFile          string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, level string

	fset := flag.NewFlagSet("manito-manita", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.AdminPin, "admin-pin", "", "Admin PIN seeded on first start (prefer env)")
	fset.StringVar(&cfg.AdminTokenSecret, "token-secret", "", "Admin token signing secret (prefer env)")
	fset.StringVar(&ttl, "token-ttl", "", "Admin token lifetime, e.g. 12h")

	fset.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fset.StringVar(&cfg.EnvFile, "env", DefaultEnvFile, "Dotenv file to load before reading the environment")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment wins over the file; a missing file is fine
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
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
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != db.TypeSQLite && cfg.DatabaseType != db.TypePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.AdminPin == "" {
		cfg.AdminPin = os.Getenv("ADMIN_PIN")
		if cfg.AdminPin == "" {
			cfg.AdminPin = DefaultAdminPin
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminTokenSecret == "" {
		cfg.AdminTokenSecret = os.Getenv("ADMIN_TOKEN_SECRET")
	}
	if cfg.AdminTokenSecret == "" {
		return Config{}, errors.New("ADMIN_TOKEN_SECRET required")
	}

	if ttl == "" {
		ttl = os.Getenv("ADMIN_TOKEN_TTL")
	}
	cfg.AdminTokenTTL = DefaultTokenTTL
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid admin token TTL %q", ttl)
		}
		cfg.AdminTokenTTL = d
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
		if level == "" {
			level = DefaultLogLevel
		}
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}

	return cfg, nil
}
