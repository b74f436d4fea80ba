// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaylew1421/commonkind/auth"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/models"
	"github.com/kaylew1421/commonkind/testutil"
)

func TestAdminLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, cfg)

	tests := []struct {
		name       string
		password   string
		wantStatus int
	}{
		{"correct password", cfg.AdminPassword, 200},
		{"wrong password", "letmein", 401},
		{"empty password", "", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/admin/login", models.AdminLoginRequest{Password: tt.password}, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == 200 {
				var resp models.AdminLoginResponse
				testutil.AssertJSON(t, w, &resp)
				if !resp.OK || !strings.HasPrefix(resp.Token, auth.TokenPrefix) {
					t.Errorf("Expected ok with adm_ token, got %+v", resp)
				}
			}
		})
	}
}

func TestAdminMe_TokenLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	adminHandler := NewAdminHandler(db, cfg)

	// Log in for a real token
	req := testutil.MakeRequest("POST", "/api/admin/login", models.AdminLoginRequest{Password: cfg.AdminPassword}, nil)
	w := httptest.NewRecorder()
	adminHandler.Login(w, req)
	testutil.AssertStatus(t, w, 200)

	var login models.AdminLoginResponse
	testutil.AssertJSON(t, w, &login)

	me := middleware.RequireAdmin(db, adminHandler.Me)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + login.Token, 200},
		{"tampered token", "Bearer " + login.Token + "x", 401},
		{"missing header", "", 401},
		{"not a bearer scheme", "Basic abc", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.authHeader != "" {
				headers["Authorization"] = tt.authHeader
			}
			req := testutil.MakeRequest("GET", "/api/admin/me", nil, headers)
			w := httptest.NewRecorder()

			me(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == 200 {
				var resp models.AdminMeResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Role != "admin" {
					t.Errorf("Expected role admin, got %q", resp.Role)
				}
			}
		})
	}
}

func TestAdminMe_ExpiredTokenEvicted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	adminHandler := NewAdminHandler(db, cfg)

	expired := testutil.CreateTestToken(t, db, -time.Hour)

	me := middleware.RequireAdmin(db, adminHandler.Me)
	req := testutil.MakeRequest("GET", "/api/admin/me", nil, map[string]string{"Authorization": "Bearer " + expired})
	w := httptest.NewRecorder()

	me(w, req)
	testutil.AssertStatus(t, w, 401)

	// Lazy eviction: the lookup should have deleted the row
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admin_token WHERE token = $1`, expired).Scan(&count); err != nil {
		t.Fatalf("Failed to count tokens: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected expired token to be evicted on lookup, found %d rows", count)
	}
}

func TestResetAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	adminHandler := NewAdminHandler(db, cfg)
	voucherHandler := NewVoucherHandler(db, cfg)

	hub1 := testutil.CreateTestHub(t, db, "Hub One", 10, 3)
	hub2 := testutil.CreateTestHub(t, db, "Hub Two", 5, 0)
	voucherID := testutil.IssueTestVoucher(t, db, hub1)

	reset := middleware.RequireSecret(cfg.AdminSecret, adminHandler.ResetAll)

	// Wrong secret is rejected
	req := testutil.MakeRequest("POST", "/api/admin/reset", nil, map[string]string{"x-admin-secret": "wrong"})
	w := httptest.NewRecorder()
	reset(w, req)
	testutil.AssertStatus(t, w, 401)

	// Correct secret restores every hub and clears the ledger
	req = testutil.MakeRequest("POST", "/api/admin/reset", nil, map[string]string{"x-admin-secret": cfg.AdminSecret})
	w = httptest.NewRecorder()
	reset(w, req)
	testutil.AssertStatus(t, w, 200)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected plain-text confirmation, got %q", ct)
	}

	if got := testutil.HubRemaining(t, db, hub1); got != 10 {
		t.Errorf("Expected hub1 restored to 10, got %d", got)
	}
	if got := testutil.HubRemaining(t, db, hub2); got != 5 {
		t.Errorf("Expected hub2 restored to 5, got %d", got)
	}

	// A pre-reset voucher id is now unknown
	redeemReq := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: voucherID}, nil)
	w = httptest.NewRecorder()
	voucherHandler.Redeem(w, redeemReq)
	testutil.AssertStatus(t, w, 404)
}

func TestResetAll_UnconfiguredSecretStaysClosed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.AdminSecret = ""
	adminHandler := NewAdminHandler(db, cfg)

	reset := middleware.RequireSecret(cfg.AdminSecret, adminHandler.ResetAll)

	req := testutil.MakeRequest("POST", "/api/admin/reset", nil, map[string]string{"x-admin-secret": ""})
	w := httptest.NewRecorder()
	reset(w, req)
	testutil.AssertStatus(t, w, 401)
}
