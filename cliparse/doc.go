// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminPin: Admin PIN written to the settings row on first start (default: ADMIN-2025)
  - AdminTokenSecret: HS256 secret for admin session tokens (required)
  - AdminTokenTTL: Admin session lifetime (default: 12h)
  - LogLevel: slog level (default: info)
  - EnvFile: Dotenv file loaded before the environment is read (default: .env)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-pin    Admin PIN
	-token-secret Admin token secret
	-token-ttl    Admin token lifetime
	-log-level    Log level
	-env          Dotenv file ("" disables)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	ADMIN_PIN          → -admin-pin
	ADMIN_TOKEN_SECRET → -token-secret
	ADMIN_TOKEN_TTL    → -token-ttl
	LOG_LEVEL          → -log-level

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the dotenv file. A missing dotenv
file is not an error.

The admin PIN only seeds the settings row. Once the row exists, changing
ADMIN_PIN has no effect.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_TOKEN_SECRET is missing
  - the database type is not sqlite or postgres
  - the port, TTL or log level cannot be parsed
*/
package cliparse
