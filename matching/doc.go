// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matching implements the draw.

# Draw

	engine := matching.NewEngine(s)
	match, err := engine.Draw(ctx, pin)

Checks run in this order, each with its own error:

 1. the requester exists (ErrParticipantNotFound)
 2. the requester is approved (ErrNotApproved)
 3. the requester has not drawn (ErrAlreadyDrawn)
 4. drawing is enabled (ErrDrawDisabled)
 5. the eligible pool is not empty (ErrNoCandidates)

The pool is every approved participant other than the requester who is not
already someone's recipient. One member is chosen uniformly with crypto/rand.
Only the requester's row is written.

# Concurrency

Draws in one process hold a mutex. Each draw is a single transaction ending
in a conditional assignment. If another process took the recipient first,
the draw is retried, up to MaxDrawAttempts times, then ErrDrawContention.

# Assignments

Assignments is the giver→receiver edge set. Add rejects self-edges, a second
recipient for a giver, and a second giver for a recipient.
*/
package matching
