// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Manito/Manita API server.

Manito/Manita is a Secret Santa style gift exchange. Participants register
and receive a PIN, an admin approves them, and once drawing is enabled each
approved participant draws one recipient. No one draws themselves and no one
is drawn twice.

# Starting the Server

	DATABASE_URL=manito.db ADMIN_TOKEN_SECRET=change-me go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -token-secret change-me

# Configuration

Settings come from flags, then environment variables, then a .env file.

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_TOKEN_SECRET (-token-secret): HMAC key for admin session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_PIN (-admin-pin): Seeds the admin PIN on first start (default: ADMIN-2025)
  - ADMIN_TOKEN_TTL (-token-ttl): Admin token lifetime (default: 12h)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: HTTP request handlers (participants, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and error helpers
  - matching: Draw engine and eligibility rules
  - store: Persistence over database/sql
  - models: Request/response and domain types
  - apperr: Error kinds and HTTP status mapping
  - auth: PINs, IDs and admin tokens
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
