// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/axljndotdev/manito-manita/apperr"
)

// MaxPINAttempts bounds PIN regeneration on collisions
const MaxPINAttempts = 100

var (
	ErrParticipantNotFound = apperr.NotFound("Participant not found")
	ErrPINExhausted        = apperr.Internal("Unable to generate unique PIN", nil)
	// ErrAssignmentConflict means the conditional assignment lost a race:
	// the recipient was taken, or the giver or recipient changed state.
	ErrAssignmentConflict = apperr.Conflict("Draw conflicted with another update, please try again")
)

// Querier is satisfied by *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs every store operation against either the pool or an open transaction
type Queries struct {
	q        Querier
	adminPin string
}

// Store owns the connection pool
type Store struct {
	*Queries
	db *sql.DB
}

// New creates a store. adminPin seeds the settings row the first time it is read.
func New(db *sql.DB, adminPin string) *Store {
	return &Store{
		Queries: &Queries{q: db, adminPin: adminPin},
		db:      db,
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// InTx runs fn inside a transaction. The transaction commits if fn returns nil
// and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Queries{q: tx, adminPin: s.adminPin}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY conflict on either driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
