// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and identifier generation utilities.

# Participant PINs

PINs are the participant's only credential:

	pin, err := auth.GeneratePIN()  // "MM-0427"

The four digits come from nanoid with a decimal alphabet. With only 10,000
possible values, collisions are expected; the store retries on a unique
violation.

# Admin PIN

The stored admin PIN is compared in constant time:

	ok := auth.VerifyAdminPin(given, settings.AdminPin)

# Admin Session Tokens

A successful admin login also returns an HS256 JWT so clients do not have to
resend the PIN on every call:

	token, expiresAt, err := auth.IssueAdminToken(secret, 12*time.Hour)
	err = auth.ParseAdminToken(secret, token)

Tokens carry subject "admin" and must have an expiry. Any other signing
method is rejected.

# ID Generation

Row identifiers are random UUIDs:

	id := auth.NewID()
*/
package auth
