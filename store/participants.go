// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/axljndotdev/manito-manita/auth"
	"github.com/axljndotdev/manito-manita/models"
)

// generatePIN is swapped in tests to force collisions
var generatePIN = auth.GeneratePIN

// Edge is one giver→receiver assignment
type Edge struct {
	Giver    string
	Receiver string
}

const participantColumns = `id, pin, full_name, codename, gender, wishlist, approved, has_drawn, assigned_to_pin, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (models.Participant, error) {
	var p models.Participant
	var assigned sql.NullString
	err := row.Scan(&p.ID, &p.PIN, &p.FullName, &p.Codename, &p.Gender, &p.Wishlist,
		&p.Approved, &p.HasDrawn, &assigned, &p.CreatedAt)
	if err != nil {
		return models.Participant{}, err
	}
	if assigned.Valid {
		p.AssignedToPin = &assigned.String
	}
	return p, nil
}

// CreateParticipant inserts a new unapproved participant with a fresh PIN.
// A PIN collision is detected by the unique constraint and retried.
func (q *Queries) CreateParticipant(ctx context.Context, req models.RegisterRequest) (models.Participant, error) {
	p := models.Participant{
		ID:        auth.NewID(),
		FullName:  req.FullName,
		Codename:  req.Codename,
		Gender:    req.Gender,
		Wishlist:  req.Wishlist,
		CreatedAt: time.Now().UTC(),
	}

	for attempt := 0; attempt < MaxPINAttempts; attempt++ {
		pin, err := generatePIN()
		if err != nil {
			return models.Participant{}, err
		}

		_, err = q.q.ExecContext(ctx, `
			INSERT INTO participant (id, pin, full_name, codename, gender, wishlist, approved, has_drawn, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, $7)
		`, p.ID, pin, p.FullName, p.Codename, p.Gender, p.Wishlist, p.CreatedAt)
		if err == nil {
			p.PIN = pin
			return p, nil
		}
		if !isUniqueViolation(err) {
			return models.Participant{}, fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	return models.Participant{}, ErrPINExhausted
}

func (q *Queries) GetParticipant(ctx context.Context, pin string) (models.Participant, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+participantColumns+` FROM participant WHERE pin = $1`, pin)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Participant{}, ErrParticipantNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, nil
}

// ListParticipants returns participants in registration order.
// A nil approved returns everyone.
func (q *Queries) ListParticipants(ctx context.Context, approved *bool) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participant`
	var args []any
	if approved != nil {
		query += ` WHERE approved = $1`
		args = append(args, *approved)
	}
	query += ` ORDER BY created_at, pin`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpdateProfile changes codename and/or wishlist. Nil values are left unchanged.
func (q *Queries) UpdateProfile(ctx context.Context, pin string, codename, wishlist *string) (models.Participant, error) {
	result, err := q.q.ExecContext(ctx, `
		UPDATE participant
		SET codename = COALESCE($2, codename), wishlist = COALESCE($3, wishlist)
		WHERE pin = $1
	`, pin, codename, wishlist)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to update participant: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return models.Participant{}, ErrParticipantNotFound
	}
	return q.GetParticipant(ctx, pin)
}

// Approve marks a participant approved. Approving twice is a no-op.
func (q *Queries) Approve(ctx context.Context, pin string) error {
	result, err := q.q.ExecContext(ctx, `UPDATE participant SET approved = TRUE WHERE pin = $1`, pin)
	if err != nil {
		return fmt.Errorf("failed to approve participant: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// Reject deletes a participant. Anyone who had drawn the rejected participant
// is returned to the undrawn state in the same transaction.
// Rejecting an absent PIN succeeds and reports deleted=false.
func (s *Store) Reject(ctx context.Context, pin string) (deleted bool, cleared int64, err error) {
	err = s.InTx(ctx, func(q *Queries) error {
		result, err := q.q.ExecContext(ctx, `
			UPDATE participant SET assigned_to_pin = NULL, has_drawn = FALSE
			WHERE assigned_to_pin = $1
		`, pin)
		if err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}
		cleared, _ = result.RowsAffected()

		result, err = q.q.ExecContext(ctx, `DELETE FROM participant WHERE pin = $1`, pin)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}
		n, _ := result.RowsAffected()
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return deleted, cleared, nil
}

// ListAssignments returns every giver→receiver edge
func (q *Queries) ListAssignments(ctx context.Context) ([]Edge, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT pin, assigned_to_pin FROM participant
		WHERE assigned_to_pin IS NOT NULL
		ORDER BY pin
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Giver, &e.Receiver); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return edges, nil
}

// AssignMatch records giver→receiver. The write only lands if the giver is
// still approved and undrawn and the receiver is still approved; the unique
// constraint on assigned_to_pin rejects a receiver that was taken meanwhile.
// Either failure returns ErrAssignmentConflict.
func (q *Queries) AssignMatch(ctx context.Context, giver, receiver string) error {
	result, err := q.q.ExecContext(ctx, `
		UPDATE participant
		SET assigned_to_pin = $1, has_drawn = TRUE
		WHERE pin = $2 AND has_drawn = FALSE AND approved = TRUE
		  AND EXISTS (SELECT 1 FROM participant r WHERE r.pin = $1 AND r.approved = TRUE)
	`, receiver, giver)
	if isUniqueViolation(err) {
		return ErrAssignmentConflict
	}
	if err != nil {
		return fmt.Errorf("failed to assign match: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrAssignmentConflict
	}
	return nil
}

// ResetAllDraws clears every assignment. Approval is untouched.
func (q *Queries) ResetAllDraws(ctx context.Context) (int64, error) {
	result, err := q.q.ExecContext(ctx, `
		UPDATE participant SET has_drawn = FALSE, assigned_to_pin = NULL
		WHERE has_drawn = TRUE OR assigned_to_pin IS NOT NULL
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset draws: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
