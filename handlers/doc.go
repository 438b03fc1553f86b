// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Manito/Manita API.

# Handler Types

  - ParticipantHandler: Registration, login, profile updates and drawing
  - AdminHandler: Admin login, roster, approval, draw switch and reset

Handlers are created via constructor functions that accept the store:

	s := store.New(db, cfg.AdminPin)
	participantHandler := handlers.NewParticipantHandler(s, matching.NewEngine(s))
	adminHandler := handlers.NewAdminHandler(s, cfg)

# Validation

Request bodies are trimmed and then checked with validator struct tags.
Failures return 400 with a readable message and a per-field map keyed by
JSON name.

# Admin Authentication

Gated routes are wrapped with AdminHandler.RequireAdmin, which accepts
either the X-Admin-Pin header or an "Authorization: Bearer" token issued by
POST /api/admin/login. When both are present the PIN header wins.

# Errors

Handlers return errors through middleware.WriteError, which maps apperr
kinds to status codes and never exposes the underlying cause.
*/
package handlers
