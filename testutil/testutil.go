// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/axljndotdev/manito-manita/auth"
	"github.com/axljndotdev/manito-manita/cliparse"
	"github.com/axljndotdev/manito-manita/db"
)

// TestAdminPin is the admin PIN seeded by GetTestConfig
const TestAdminPin = "TEST-ADMIN"

var pinCounter atomic.Int32

// SetupTestDB creates a fresh SQLite database with the full schema in a temp dir
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return setupTestDBAt(t, filepath.Join(t.TempDir(), "test.db"))
}

// SetupSharedTestDB opens two independent pools on one fresh database, the
// way two server processes would share it
func SetupSharedTestDB(t *testing.T) (*sql.DB, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shared.db")
	first := setupTestDBAt(t, path)
	return first, openTestDB(t, path)
}

func setupTestDBAt(t *testing.T, path string) *sql.DB {
	t.Helper()

	conn := openTestDB(t, path)
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "test.db",
		DatabaseType:     db.TypeSQLite,
		AdminPin:         TestAdminPin,
		AdminTokenSecret: "test-token-secret",
		AdminTokenTTL:    time.Hour,
	}
}

// ParticipantOpts controls the state of a fixture participant
type ParticipantOpts struct {
	Approved bool
	// AssignedTo marks the participant as having drawn this PIN
	AssignedTo string
	Codename   string
}

// CreateTestParticipant inserts a participant and returns its PIN.
// PINs are sequential (MM-9001, MM-9002, ...) so they never collide within a run.
func CreateTestParticipant(t *testing.T, conn *sql.DB, fullName string, opts ParticipantOpts) string {
	t.Helper()

	pin := fmt.Sprintf("MM-%04d", 9000+pinCounter.Add(1)%1000)
	codename := opts.Codename
	if codename == "" {
		codename = "Secret " + fullName
	}

	var assigned *string
	if opts.AssignedTo != "" {
		assigned = &opts.AssignedTo
	}

	_, err := conn.Exec(`
		INSERT INTO participant (id, pin, full_name, codename, gender, wishlist, approved, has_drawn, assigned_to_pin, created_at)
		VALUES ($1, $2, $3, $4, 'Other', 'Books and coffee', $5, $6, $7, $8)
	`, auth.NewID(), pin, fullName, codename, opts.Approved, assigned != nil, assigned, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return pin
}

// EnableDraw seeds the settings row with drawing enabled
func EnableDraw(t *testing.T, conn *sql.DB) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO admin_settings (id, draw_enabled, admin_pin, updated_at)
		VALUES ('singleton', TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE SET draw_enabled = TRUE
	`, TestAdminPin, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to enable draw: %v", err)
	}
}

// AssignedTo returns the assigned_to_pin of a participant, or "" if unset
func AssignedTo(t *testing.T, conn *sql.DB, pin string) string {
	t.Helper()

	var assigned sql.NullString
	if err := conn.QueryRow(`SELECT assigned_to_pin FROM participant WHERE pin = $1`, pin).Scan(&assigned); err != nil {
		t.Fatalf("Failed to read assignment for %s: %v", pin, err)
	}
	return assigned.String
}

// AdminHeaders returns headers that authenticate as the test admin
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Pin": TestAdminPin}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
