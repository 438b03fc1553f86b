// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/axljndotdev/manito-manita/apperr"
	"github.com/axljndotdev/manito-manita/auth"
	"github.com/axljndotdev/manito-manita/cliparse"
	"github.com/axljndotdev/manito-manita/middleware"
	"github.com/axljndotdev/manito-manita/models"
	"github.com/axljndotdev/manito-manita/store"
)

var (
	errAdminAuthRequired = apperr.Unauthorized("Admin authentication required")
	errInvalidAdminPin   = apperr.Unauthorized("Invalid admin PIN")
	errInvalidAdminToken = apperr.Unauthorized("Invalid or expired admin token")
)

type AdminHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAdminHandler(s *store.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: s, cfg: cfg}
}

// RequireAdmin rejects requests without a valid X-Admin-Pin header or
// "Authorization: Bearer <token>" admin session token
func (h *AdminHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pin := r.Header.Get("X-Admin-Pin"); pin != "" {
			ok, err := h.store.VerifyAdminPin(r.Context(), pin)
			if err != nil {
				slog.Error("failed to verify admin pin", "error", err)
				middleware.WriteError(w, err)
				return
			}
			if !ok {
				slog.Warn("admin pin rejected", "remote", middleware.GetClientIP(r))
				middleware.WriteError(w, errInvalidAdminPin)
				return
			}
			next(w, r)
			return
		}

		token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			middleware.WriteError(w, errAdminAuthRequired)
			return
		}
		if err := auth.ParseAdminToken(h.cfg.AdminTokenSecret, strings.TrimSpace(token)); err != nil {
			slog.Warn("admin token rejected", "remote", middleware.GetClientIP(r), "error", err)
			middleware.WriteError(w, errInvalidAdminToken)
			return
		}
		next(w, r)
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.AdminPin = strings.TrimSpace(req.AdminPin)
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	ok, err := h.store.VerifyAdminPin(r.Context(), req.AdminPin)
	if err != nil {
		slog.Error("failed to verify admin pin", "error", err)
		middleware.WriteError(w, err)
		return
	}
	if !ok {
		slog.Warn("admin login rejected", "remote", middleware.GetClientIP(r))
		middleware.WriteError(w, errInvalidAdminPin)
		return
	}

	token, expiresAt, err := auth.IssueAdminToken(h.cfg.AdminTokenSecret, h.cfg.AdminTokenTTL)
	if err != nil {
		middleware.WriteError(w, apperr.Internal("Admin login failed", err))
		return
	}

	slog.Info("admin logged in", "remote", middleware.GetClientIP(r), "expires_at", expiresAt)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Success:   true,
		Message:   "Admin login successful",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// ListParticipants handles GET /api/admin/participants
func (h *AdminHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.store.ListParticipants(r.Context(), nil)
	if err != nil {
		slog.Error("failed to list participants", "error", err)
		middleware.WriteError(w, err)
		return
	}

	resp := models.AdminParticipantsResponse{
		Success:  true,
		All:      make([]models.AdminParticipant, 0, len(participants)),
		Pending:  []models.AdminParticipant{},
		Approved: []models.AdminParticipant{},
	}
	for _, p := range participants {
		ap := models.AdminParticipant{
			Participant:   p,
			RegisteredAgo: humanize.Time(p.CreatedAt),
		}
		resp.All = append(resp.All, ap)
		if p.Approved {
			resp.Approved = append(resp.Approved, ap)
		} else {
			resp.Pending = append(resp.Pending, ap)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Approve handles POST /api/admin/approve for both approve and reject actions
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.PIN = strings.TrimSpace(req.PIN)
	req.Action = strings.TrimSpace(req.Action)
	if err := validateRequest(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	switch req.Action {
	case models.ActionApprove:
		if err := h.store.Approve(r.Context(), req.PIN); err != nil {
			middleware.WriteError(w, err)
			return
		}
		slog.Info("participant approved", "pin", req.PIN)
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
			Success: true,
			Message: "Participant approved",
		})

	case models.ActionReject:
		deleted, cleared, err := h.store.Reject(r.Context(), req.PIN)
		if err != nil {
			slog.Error("failed to reject participant", "pin", req.PIN, "error", err)
			middleware.WriteError(w, err)
			return
		}
		slog.Info("participant rejected", "pin", req.PIN, "deleted", deleted, "assignments_cleared", cleared)
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
			Success: true,
			Message: "Participant rejected",
		})

	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid action")
	}
}

// ToggleDraw handles POST /api/admin/toggle-draw
func (h *AdminHandler) ToggleDraw(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.store.ToggleDrawEnabled(r.Context())
	if err != nil {
		slog.Error("failed to toggle draw", "error", err)
		middleware.WriteError(w, err)
		return
	}

	slog.Info("draw toggled", "draw_enabled", enabled)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleDrawResponse{
		Success:     true,
		DrawEnabled: enabled,
	})
}

// ResetDraws handles POST /api/admin/reset-draws
func (h *AdminHandler) ResetDraws(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.ResetAllDraws(r.Context())
	if err != nil {
		slog.Error("failed to reset draws", "error", err)
		middleware.WriteError(w, err)
		return
	}

	slog.Info("draws reset", "participants_reset", n)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "All draws have been reset",
	})
}

// GetSettings handles GET /api/admin/settings. It is public so participants
// can see whether drawing is open.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetSettings(r.Context())
	if err != nil {
		slog.Error("failed to get settings", "error", err)
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SettingsResponse{
		Success:  true,
		Settings: models.PublicSettings{DrawEnabled: settings.DrawEnabled},
	})
}
