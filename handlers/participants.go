// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/axljndotdev/manito-manita/matching"
	"github.com/axljndotdev/manito-manita/middleware"
	"github.com/axljndotdev/manito-manita/models"
	"github.com/axljndotdev/manito-manita/store"
)

type ParticipantHandler struct {
	store  *store.Store
	engine *matching.Engine
}

func NewParticipantHandler(s *store.Store, engine *matching.Engine) *ParticipantHandler {
	return &ParticipantHandler{store: s, engine: engine}
}

// Register handles POST /api/register
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Codename = strings.TrimSpace(req.Codename)
	req.Gender = strings.TrimSpace(req.Gender)
	req.Wishlist = strings.TrimSpace(req.Wishlist)
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	p, err := h.store.CreateParticipant(r.Context(), req)
	if err != nil {
		slog.Error("failed to register participant", "error", err)
		middleware.WriteError(w, err)
		return
	}

	slog.Info("participant registered", "pin", p.PIN, "codename", p.Codename)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Success: true,
		PIN:     p.PIN,
		Message: "Registration successful",
	})
}

// Login handles POST /api/login
func (h *ParticipantHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PIN = strings.TrimSpace(req.PIN)
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	p, err := h.store.GetParticipant(r.Context(), req.PIN)
	if errors.Is(err, store.ErrParticipantNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid PIN")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.WriteError(w, err)
		return
	}

	h.writeView(w, r, p)
}

// GetParticipant handles GET /api/participant/{pin}
func (h *ParticipantHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	if pin == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "PIN is required")
		return
	}

	p, err := h.store.GetParticipant(r.Context(), pin)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	h.writeView(w, r, p)
}

// UpdateParticipant handles PATCH /api/participant/{pin}
func (h *ParticipantHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	if pin == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "PIN is required")
		return
	}

	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	trimPtr(req.Codename)
	trimPtr(req.Wishlist)
	if req.Codename == nil && req.Wishlist == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	p, err := h.store.UpdateProfile(r.Context(), pin, req.Codename, req.Wishlist)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("participant updated", "pin", pin)

	h.writeView(w, r, p)
}

// Draw handles POST /api/draw
func (h *ParticipantHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req models.DrawRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PIN = strings.TrimSpace(req.PIN)
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	match, err := h.engine.Draw(r.Context(), req.PIN)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{
		Success: true,
		Match:   match,
	})
}

// writeView returns the participant's own view, with their recipient's public
// profile in place of the recipient PIN
func (h *ParticipantHandler) writeView(w http.ResponseWriter, r *http.Request, p models.Participant) {
	match, err := h.engine.Recipient(r.Context(), p)
	if err != nil {
		slog.Error("failed to load recipient", "pin", p.PIN, "error", err)
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantResponse{
		Success:     true,
		Participant: p.View(match),
	})
}
