// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the durable participant map and the settings singleton.

# Queries and Transactions

Every operation is a method on Queries, which runs against either the pool or
an open transaction. Store embeds a pool-backed Queries and adds InTx:

	s := store.New(conn, cfg.AdminPin)
	p, err := s.GetParticipant(ctx, pin)

	err = s.InTx(ctx, func(q *store.Queries) error {
		edges, err := q.ListAssignments(ctx)
		// ...
		return q.AssignMatch(ctx, giver, receiver)
	})

With SQLite the pool holds one connection, so code inside InTx must only use
the Queries it is given.

# Participants

  - CreateParticipant: inserts with a fresh PIN, retrying collisions up to 100 times
  - GetParticipant, ListParticipants (optionally filtered by approval)
  - UpdateProfile: codename and wishlist
  - Approve: unknown PIN is ErrParticipantNotFound
  - Reject: deletes and clears any assignment pointing at the PIN; idempotent
  - ListAssignments, AssignMatch, ResetAllDraws

AssignMatch is conditional on the giver being approved and undrawn and the
receiver being approved. The unique constraint on assigned_to_pin rejects a
receiver already taken. Either failure returns ErrAssignmentConflict.

# Settings

GetSettings creates the singleton row with a conditional insert the first time
it is read, seeded with the configured admin PIN. ToggleDrawEnabled flips the
flag in a single UPDATE ... RETURNING.

# Errors

Not-found and conflict results are *apperr.Error sentinels; compare them with
errors.Is. Driver failures are wrapped with context.
*/
package store
