// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"context"
	"errors"
	"log/slog"

	"github.com/axljndotdev/manito-manita/apperr"
	"github.com/axljndotdev/manito-manita/models"
	"github.com/axljndotdev/manito-manita/store"
)

// MaxDrawAttempts bounds retries when a draw loses a race on the recipient
const MaxDrawAttempts = 3

var (
	ErrParticipantNotFound = store.ErrParticipantNotFound
	ErrNotApproved         = apperr.Forbidden("You must be approved by admin to draw")
	ErrAlreadyDrawn        = apperr.Conflict("You have already drawn your Manito/Manita")
	ErrDrawDisabled        = apperr.Forbidden("Drawing is currently disabled by admin")
	ErrNoCandidates        = apperr.Conflict("No participants available for drawing")
	ErrDrawContention      = apperr.Conflict("Too many simultaneous draws, please try again")
)

// assignMatch writes the edge inside the draw transaction. Tests replace it.
var assignMatch = (*store.Queries).AssignMatch

// Engine performs draws. Draws within one process are serialized; across
// processes the conditional assignment and the unique recipient constraint
// decide the winner and the loser retries.
type Engine struct {
	// sem is a one-slot lock that a waiting caller can abandon
	sem   chan struct{}
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{sem: make(chan struct{}, 1), store: s}
}

// Draw assigns a random eligible recipient to the requester and returns the
// recipient's public profile. Preconditions are checked in order: the
// requester exists, is approved, has not drawn, drawing is enabled, and the
// pool is not empty.
func (e *Engine) Draw(ctx context.Context, pin string) (models.PublicProfile, error) {
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return models.PublicProfile{}, ctx.Err()
	}
	defer func() { <-e.sem }()

	for attempt := 1; attempt <= MaxDrawAttempts; attempt++ {
		match, err := e.drawOnce(ctx, pin)
		if !errors.Is(err, store.ErrAssignmentConflict) {
			return match, err
		}
		slog.Warn("draw conflicted", "pin", pin, "attempt", attempt)
	}

	slog.Warn("draw gave up", "pin", pin, "attempts", MaxDrawAttempts)
	return models.PublicProfile{}, ErrDrawContention
}

func (e *Engine) drawOnce(ctx context.Context, pin string) (models.PublicProfile, error) {
	var selected models.Participant

	err := e.store.InTx(ctx, func(q *store.Queries) error {
		requester, err := q.GetParticipant(ctx, pin)
		if err != nil {
			return err
		}
		if !requester.Approved {
			return ErrNotApproved
		}
		if requester.HasDrawn {
			return ErrAlreadyDrawn
		}

		settings, err := q.GetSettings(ctx)
		if err != nil {
			return err
		}
		if !settings.DrawEnabled {
			return ErrDrawDisabled
		}

		approved := true
		candidates, err := q.ListParticipants(ctx, &approved)
		if err != nil {
			return err
		}
		edges, err := q.ListAssignments(ctx)
		if err != nil {
			return err
		}
		assignments, err := AssignmentsFrom(edges)
		if err != nil {
			return apperr.Internal("Inconsistent assignments", err)
		}

		pool := EligiblePool(candidates, pin, assignments)
		if len(pool) == 0 {
			return ErrNoCandidates
		}

		selected, err = Pick(pool)
		if err != nil {
			return apperr.Internal("Failed to draw Manito/Manita", err)
		}
		if err := assignments.Add(pin, selected.PIN); err != nil {
			return apperr.Internal("Failed to draw Manito/Manita", err)
		}

		return assignMatch(q, ctx, pin, selected.PIN)
	})
	if err != nil {
		return models.PublicProfile{}, err
	}

	slog.Info("participant drew", "pin", pin)
	return selected.Public(), nil
}

// Recipient returns the public profile of p's assigned recipient, or nil if p
// has not drawn.
func (e *Engine) Recipient(ctx context.Context, p models.Participant) (*models.PublicProfile, error) {
	if p.AssignedToPin == nil {
		return nil, nil
	}

	target, err := e.store.GetParticipant(ctx, *p.AssignedToPin)
	if errors.Is(err, store.ErrParticipantNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile := target.Public()
	return &profile, nil
}
