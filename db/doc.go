// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - postgres: github.com/lib/pq, default pool
  - sqlite: modernc.org/sqlite with busy_timeout, WAL and foreign keys;
    the pool is capped at one connection

The connection is pinged before it is returned.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The statements are portable between PostgreSQL and SQLite.

# Tables

  - participant: registrants, approval and draw state
  - admin_settings: one row keyed "singleton"

# Constraints

The participant table enforces the matching invariants directly:

  - pin is unique
  - assigned_to_pin is unique, so nobody is targeted twice
  - assigned_to_pin never equals pin
  - has_drawn is true exactly when assigned_to_pin is set
  - gender is Male, Female or Other

# Indexes

  - participant.pin (unique)
  - participant.assigned_to_pin (unique)
  - participant.approved
*/
package db
