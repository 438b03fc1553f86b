// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/axljndotdev/manito-manita/cliparse"
	"github.com/axljndotdev/manito-manita/handlers"
	"github.com/axljndotdev/manito-manita/matching"
	"github.com/axljndotdev/manito-manita/middleware"
	"github.com/axljndotdev/manito-manita/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	s := store.New(db, cfg.AdminPin)
	participantHandler := handlers.NewParticipantHandler(s, matching.NewEngine(s))
	adminHandler := handlers.NewAdminHandler(s, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Participant operations (public, PIN identifies the caller)
	mux.HandleFunc("POST /api/register", middleware.WithLogging(participantHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.WithLogging(participantHandler.Login))
	mux.HandleFunc("GET /api/participant/{pin}", middleware.WithLogging(participantHandler.GetParticipant))
	mux.HandleFunc("PATCH /api/participant/{pin}", middleware.WithLogging(participantHandler.UpdateParticipant))
	mux.HandleFunc("POST /api/draw", middleware.WithLogging(participantHandler.Draw))

	// Admin operations
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/participants", middleware.WithLogging(adminHandler.RequireAdmin(adminHandler.ListParticipants)))
	mux.HandleFunc("POST /api/admin/approve", middleware.WithLogging(adminHandler.RequireAdmin(adminHandler.Approve)))
	mux.HandleFunc("POST /api/admin/toggle-draw", middleware.WithLogging(adminHandler.RequireAdmin(adminHandler.ToggleDraw)))
	mux.HandleFunc("POST /api/admin/reset-draws", middleware.WithLogging(adminHandler.RequireAdmin(adminHandler.ResetDraws)))

	// Settings are readable by participants
	mux.HandleFunc("GET /api/admin/settings", middleware.WithLogging(adminHandler.GetSettings))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("manito-manita API v1"))
	})

	return mux
}
