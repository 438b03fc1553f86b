// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/axljndotdev/manito-manita/matching"
	"github.com/axljndotdev/manito-manita/models"
	"github.com/axljndotdev/manito-manita/store"
	"github.com/axljndotdev/manito-manita/testutil"
)

// TestFullExchangeWorkflow tests the complete end-to-end workflow:
// 1. Participants register
// 2. A draw before approval is refused
// 3. Admin approves everyone
// 4. A draw before drawing is enabled is refused
// 5. Admin enables drawing
// 6. Everyone draws
// 7. Participants see their match after logging in again
// 8. Admin resets draws
func TestFullExchangeWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	s := store.New(db, cfg.AdminPin)
	participantHandler := NewParticipantHandler(s, matching.NewEngine(s))
	adminHandler := NewAdminHandler(s, cfg)
	admin := testutil.AdminHeaders()

	// Step 1: Register
	names := []string{"Juan", "Maria", "Pedro"}
	pins := make([]string, len(names))
	for i, name := range names {
		body := models.RegisterRequest{FullName: name, Codename: "Code " + name, Gender: models.GenderOther, Wishlist: "Something warm"}
		w := httptest.NewRecorder()
		participantHandler.Register(w, testutil.MakeRequest("POST", "/api/register", body, nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 1 - Register %s failed: %d - %s", name, w.Code, w.Body.String())
		}
		var resp models.RegisterResponse
		testutil.AssertJSON(t, w, &resp)
		pins[i] = resp.PIN
	}
	t.Logf("Step 1 - Registered %v", pins)

	// Step 2: Unapproved draw
	w := httptest.NewRecorder()
	participantHandler.Draw(w, testutil.MakeRequest("POST", "/api/draw", models.DrawRequest{PIN: pins[0]}, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Step 3: Approve
	for _, pin := range pins {
		w := httptest.NewRecorder()
		adminHandler.Approve(w, testutil.MakeRequest("POST", "/api/admin/approve", models.ApproveRequest{PIN: pin, Action: "approve"}, admin))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Approve %s failed: %d - %s", pin, w.Code, w.Body.String())
		}
	}

	// Step 4: Drawing still disabled
	w = httptest.NewRecorder()
	participantHandler.Draw(w, testutil.MakeRequest("POST", "/api/draw", models.DrawRequest{PIN: pins[0]}, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Step 5: Enable drawing
	w = httptest.NewRecorder()
	adminHandler.ToggleDraw(w, testutil.MakeRequest("POST", "/api/admin/toggle-draw", nil, admin))
	var toggle models.ToggleDrawResponse
	testutil.AssertJSON(t, w, &toggle)
	if !toggle.DrawEnabled {
		t.Fatal("Step 5 - Expected drawing enabled")
	}

	// Step 6: Everyone draws. With three participants the last drawer can be
	// left with only themselves; then the others' draws still stand.
	drawn := 0
	for _, pin := range pins {
		w := httptest.NewRecorder()
		participantHandler.Draw(w, testutil.MakeRequest("POST", "/api/draw", models.DrawRequest{PIN: pin}, nil))
		switch w.Code {
		case http.StatusOK:
			drawn++
		case http.StatusConflict:
			t.Logf("Step 6 - %s had no candidates left", pin)
		default:
			t.Fatalf("Step 6 - Draw for %s failed: %d - %s", pin, w.Code, w.Body.String())
		}
	}
	if drawn < 2 {
		t.Fatalf("Step 6 - Expected at least 2 draws, got %d", drawn)
	}

	// Step 7: Login shows the match
	for _, pin := range pins {
		w := httptest.NewRecorder()
		participantHandler.Login(w, testutil.MakeRequest("POST", "/api/login", models.LoginRequest{PIN: pin}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ParticipantResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Participant.HasDrawn != (resp.Participant.Match != nil) {
			t.Errorf("Step 7 - %s hasDrawn=%v but match=%v", pin, resp.Participant.HasDrawn, resp.Participant.Match)
		}
	}

	// Step 8: Reset
	w = httptest.NewRecorder()
	adminHandler.ResetDraws(w, testutil.MakeRequest("POST", "/api/admin/reset-draws", nil, admin))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	adminHandler.ListParticipants(w, testutil.MakeRequest("GET", "/api/admin/participants", nil, admin))
	var roster models.AdminParticipantsResponse
	testutil.AssertJSON(t, w, &roster)
	if len(roster.Approved) != len(pins) {
		t.Errorf("Step 8 - reset must keep approvals, got %d approved", len(roster.Approved))
	}
	for _, p := range roster.All {
		if p.HasDrawn || p.AssignedToPin != nil {
			t.Errorf("Step 8 - %s still drawn after reset", p.PIN)
		}
	}
}

// TestTwoParticipantExchange: with exactly two approved participants each
// draws the other.
func TestTwoParticipantExchange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db, testutil.TestAdminPin)
	h := NewParticipantHandler(s, matching.NewEngine(s))

	testutil.EnableDraw(t, db)
	a := testutil.CreateTestParticipant(t, db, "Alice", testutil.ParticipantOpts{Approved: true})
	b := testutil.CreateTestParticipant(t, db, "Bob", testutil.ParticipantOpts{Approved: true})

	for _, tc := range []struct{ pin, want string }{{a, "Bob"}, {b, "Alice"}} {
		w := httptest.NewRecorder()
		h.Draw(w, testutil.MakeRequest("POST", "/api/draw", models.DrawRequest{PIN: tc.pin}, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.DrawResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Match.FullName != tc.want {
			t.Errorf("%s drew %s, want %s", tc.pin, resp.Match.FullName, tc.want)
		}
	}
}
