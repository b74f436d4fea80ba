// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kaylew1421/commonkind/auth"
	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/db"
	"github.com/kaylew1421/commonkind/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each test gets its own database; closing the connection discards it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A :memory: database exists per connection
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8080,
		DatabaseURL:   ":memory:",
		SeedPath:      "data/hubs.json",
		AdminPassword: "test-password",
		AdminSecret:   "test-reset-secret",
		AITimeout:     cliparse.DefaultAITimeout,
		LogLevel:      "error",
	}
}

// CreateTestHub inserts a hub and returns its ID.
func CreateTestHub(t *testing.T, conn *sql.DB, name string, dailyCap, remaining int) string {
	t.Helper()

	id, _ := auth.GenerateHubID()
	hub := models.Hub{
		ID:                id,
		Name:              name,
		Address:           "123 Main St, Alvarado, TX 76009",
		Lat:               32.4057,
		Lng:               -97.2136,
		Hours:             "11am - 8pm",
		Offer:             "1 hot meal",
		DailyCap:          dailyCap,
		VouchersRemaining: remaining,
		Type:              models.HubTypeRestaurant,
		Phone:             "(817) 555-0101",
		Requirements:      []string{"Photo ID (any)"},
		SelfAttestation:   true,
	}
	if err := db.InsertHub(conn, hub); err != nil {
		t.Fatalf("Failed to create test hub: %v", err)
	}

	return id
}

// IssueTestVoucher inserts an issued voucher for a hub and returns its ID.
func IssueTestVoucher(t *testing.T, conn *sql.DB, hubID string) string {
	t.Helper()

	id, _ := auth.GenerateVoucherID()
	now := time.Now().UnixMilli()
	_, err := conn.Exec(`
		INSERT INTO voucher (id, hub_id, status, issued_at, expires_at)
		VALUES ($1, $2, 'issued', $3, $4)
	`, id, hubID, now, now+2*time.Hour.Milliseconds())
	if err != nil {
		t.Fatalf("Failed to create test voucher: %v", err)
	}

	return id
}

// CreateTestToken inserts an admin token and returns it. A negative
// ttl produces an already-expired token.
func CreateTestToken(t *testing.T, conn *sql.DB, ttl time.Duration) string {
	t.Helper()

	token, _ := auth.GenerateAdminToken()
	now := time.Now().UnixMilli()
	_, err := conn.Exec(`
		INSERT INTO admin_token (token, issued_at, expires_at)
		VALUES ($1, $2, $3)
	`, token, now, now+ttl.Milliseconds())
	if err != nil {
		t.Fatalf("Failed to create test token: %v", err)
	}

	return token
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

// HubRemaining reads a hub's current vouchers_remaining.
func HubRemaining(t *testing.T, conn *sql.DB, hubID string) int {
	t.Helper()
	var remaining int
	if err := conn.QueryRow(`SELECT vouchers_remaining FROM hub WHERE id = $1`, hubID).Scan(&remaining); err != nil {
		t.Fatalf("Failed to read hub remaining: %v", err)
	}
	return remaining
}
