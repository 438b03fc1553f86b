// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/axljndotdev/manito-manita/auth"
	"github.com/axljndotdev/manito-manita/models"
	"github.com/axljndotdev/manito-manita/store"
	"github.com/axljndotdev/manito-manita/testutil"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewAdminHandler(store.New(db, testutil.TestAdminPin), testutil.GetTestConfig()), db
}

func TestAdminLogin(t *testing.T) {
	h, _ := newAdminHandler(t)

	tests := []struct {
		name       string
		pin        string
		wantStatus int
	}{
		{"valid pin", testutil.TestAdminPin, http.StatusOK},
		{"wrong pin", "WRONG", http.StatusUnauthorized},
		{"empty pin", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/login", models.AdminLoginRequest{AdminPin: tt.pin}, nil)
			w := httptest.NewRecorder()

			h.Login(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.AdminLoginResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Token == "" {
					t.Fatal("expected a session token")
				}
				if err := auth.ParseAdminToken(testutil.GetTestConfig().AdminTokenSecret, resp.Token); err != nil {
					t.Errorf("issued token does not verify: %v", err)
				}
				if resp.ExpiresAt.Before(time.Now()) {
					t.Errorf("token already expired: %v", resp.ExpiresAt)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	h, _ := newAdminHandler(t)
	cfg := testutil.GetTestConfig()

	validToken, _, err := auth.IssueAdminToken(cfg.AdminTokenSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expiredToken, _, err := auth.IssueAdminToken(cfg.AdminTokenSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreignToken, _, err := auth.IssueAdminToken("someone-else", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		headers     map[string]string
		wantStatus  int
		wantMessage string
	}{
		{"admin pin", map[string]string{"X-Admin-Pin": testutil.TestAdminPin}, http.StatusOK, ""},
		{"bearer token", map[string]string{"Authorization": "Bearer " + validToken}, http.StatusOK, ""},
		{"no credential", nil, http.StatusUnauthorized, "Admin authentication required"},
		{"wrong pin", map[string]string{"X-Admin-Pin": "WRONG"}, http.StatusUnauthorized, "Invalid admin PIN"},
		{"wrong pin beats valid token", map[string]string{"X-Admin-Pin": "WRONG", "Authorization": "Bearer " + validToken}, http.StatusUnauthorized, "Invalid admin PIN"},
		{"expired token", map[string]string{"Authorization": "Bearer " + expiredToken}, http.StatusUnauthorized, "Invalid or expired admin token"},
		{"foreign token", map[string]string{"Authorization": "Bearer " + foreignToken}, http.StatusUnauthorized, "Invalid or expired admin token"},
		{"basic auth", map[string]string{"Authorization": "Basic YWRtaW46YWRtaW4="}, http.StatusUnauthorized, "Admin authentication required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := h.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := testutil.MakeRequest("GET", "/api/admin/participants", nil, tt.headers)
			w := httptest.NewRecorder()

			handler(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("next called = %v", called)
			}
			if tt.wantMessage != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.wantMessage {
					t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
				}
			}
		})
	}
}

func TestAdminListParticipants(t *testing.T) {
	h, db := newAdminHandler(t)

	b := testutil.CreateTestParticipant(t, db, "Bob", testutil.ParticipantOpts{Approved: true})
	testutil.CreateTestParticipant(t, db, "Alice", testutil.ParticipantOpts{Approved: true, AssignedTo: b})
	testutil.CreateTestParticipant(t, db, "Carol", testutil.ParticipantOpts{})

	req := testutil.MakeRequest("GET", "/api/admin/participants", nil, testutil.AdminHeaders())
	w := httptest.NewRecorder()

	h.ListParticipants(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AdminParticipantsResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.All) != 3 || len(resp.Approved) != 2 || len(resp.Pending) != 1 {
		t.Fatalf("unexpected counts: all=%d approved=%d pending=%d", len(resp.All), len(resp.Approved), len(resp.Pending))
	}
	if resp.Pending[0].FullName != "Carol" {
		t.Errorf("pending = %s, want Carol", resp.Pending[0].FullName)
	}

	// Admin view exposes assignments and registration age
	var sawEdge bool
	for _, p := range resp.All {
		if p.RegisteredAgo == "" {
			t.Errorf("missing registeredAgo for %s", p.FullName)
		}
		if p.FullName == "Alice" && p.AssignedToPin != nil && *p.AssignedToPin == b {
			sawEdge = true
		}
	}
	if !sawEdge {
		t.Error("admin view should include Alice's assignment")
	}
}

func TestAdminListParticipants_Empty(t *testing.T) {
	h, _ := newAdminHandler(t)

	req := testutil.MakeRequest("GET", "/api/admin/participants", nil, testutil.AdminHeaders())
	w := httptest.NewRecorder()
	h.ListParticipants(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	want := `{"success":true,"all":[],"pending":[],"approved":[]}` + "\n"
	if w.Body.String() != want {
		t.Errorf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestAdminApprove(t *testing.T) {
	h, db := newAdminHandler(t)

	pending := testutil.CreateTestParticipant(t, db, "Pending", testutil.ParticipantOpts{})
	target := testutil.CreateTestParticipant(t, db, "Target", testutil.ParticipantOpts{Approved: true})
	giver := testutil.CreateTestParticipant(t, db, "Giver", testutil.ParticipantOpts{Approved: true, AssignedTo: target})

	tests := []struct {
		name        string
		body        models.ApproveRequest
		wantStatus  int
		wantMessage string
	}{
		{"approve", models.ApproveRequest{PIN: pending, Action: "approve"}, http.StatusOK, "Participant approved"},
		{"approve again", models.ApproveRequest{PIN: pending, Action: "approve"}, http.StatusOK, "Participant approved"},
		{"approve unknown", models.ApproveRequest{PIN: "MM-0000", Action: "approve"}, http.StatusNotFound, "Participant not found"},
		{"reject", models.ApproveRequest{PIN: target, Action: "reject"}, http.StatusOK, "Participant rejected"},
		{"reject again", models.ApproveRequest{PIN: target, Action: "reject"}, http.StatusOK, "Participant rejected"},
		{"bad action", models.ApproveRequest{PIN: pending, Action: "promote"}, http.StatusBadRequest, "Invalid action"},
		{"missing action", models.ApproveRequest{PIN: pending}, http.StatusBadRequest, "PIN and action are required"},
		{"missing pin", models.ApproveRequest{Action: "approve"}, http.StatusBadRequest, "PIN and action are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/approve", tt.body, testutil.AdminHeaders())
			w := httptest.NewRecorder()

			h.Approve(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
			if resp.Success != (tt.wantStatus == http.StatusOK) {
				t.Errorf("success = %v", resp.Success)
			}
		})
	}

	var approved bool
	if err := db.QueryRow(`SELECT approved FROM participant WHERE pin = $1`, pending).Scan(&approved); err != nil {
		t.Fatal(err)
	}
	if !approved {
		t.Error("pending participant should now be approved")
	}

	if got := testutil.AssignedTo(t, db, giver); got != "" {
		t.Errorf("giver of rejected participant should be unassigned, got %s", got)
	}
}

func TestAdminToggleDraw(t *testing.T) {
	h, _ := newAdminHandler(t)

	// false → true → false
	for i, want := range []bool{true, false} {
		req := testutil.MakeRequest("POST", "/api/admin/toggle-draw", nil, testutil.AdminHeaders())
		w := httptest.NewRecorder()

		h.ToggleDraw(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ToggleDrawResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.DrawEnabled != want {
			t.Errorf("toggle #%d: drawEnabled = %v, want %v", i+1, resp.DrawEnabled, want)
		}

		req = testutil.MakeRequest("GET", "/api/admin/settings", nil, nil)
		w = httptest.NewRecorder()
		h.GetSettings(w, req)

		var settings models.SettingsResponse
		testutil.AssertJSON(t, w, &settings)
		if settings.Settings.DrawEnabled != want {
			t.Errorf("settings after toggle #%d: drawEnabled = %v, want %v", i+1, settings.Settings.DrawEnabled, want)
		}
	}
}

func TestAdminGetSettings_HidesAdminPin(t *testing.T) {
	h, _ := newAdminHandler(t)

	req := testutil.MakeRequest("GET", "/api/admin/settings", nil, nil)
	w := httptest.NewRecorder()
	h.GetSettings(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	want := `{"success":true,"settings":{"drawEnabled":false}}` + "\n"
	if w.Body.String() != want {
		t.Errorf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestAdminResetDraws(t *testing.T) {
	h, db := newAdminHandler(t)

	a := testutil.CreateTestParticipant(t, db, "A", testutil.ParticipantOpts{Approved: true})
	b := testutil.CreateTestParticipant(t, db, "B", testutil.ParticipantOpts{Approved: true, AssignedTo: a})

	// Resetting twice leaves the same state
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/api/admin/reset-draws", nil, testutil.AdminHeaders())
		w := httptest.NewRecorder()

		h.ResetDraws(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	}

	if got := testutil.AssignedTo(t, db, b); got != "" {
		t.Errorf("B should be unassigned after reset, got %s", got)
	}

	var approved, hasDrawn bool
	if err := db.QueryRow(`SELECT approved, has_drawn FROM participant WHERE pin = $1`, b).Scan(&approved, &hasDrawn); err != nil {
		t.Fatal(err)
	}
	if !approved || hasDrawn {
		t.Errorf("after reset: approved=%v hasDrawn=%v", approved, hasDrawn)
	}
}
