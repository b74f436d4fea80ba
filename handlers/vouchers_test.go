// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kaylew1421/commonkind/models"
	"github.com/kaylew1421/commonkind/testutil"
)

func TestIssueVoucher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	hubID := testutil.CreateTestHub(t, db, "Rosa's Cafe", 10, 10)
	emptyID := testutil.CreateTestHub(t, db, "Depleted Deli", 5, 0)

	tests := []struct {
		name       string
		hubID      string
		wantStatus int
	}{
		{"valid hub", hubID, 200},
		{"unknown hub", "hub-nope", 404},
		{"depleted hub", emptyID, 400},
		{"empty hub id", "", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/voucher/issue", models.IssueVoucherRequest{HubID: tt.hubID}, nil)
			w := httptest.NewRecorder()

			handler.Issue(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestIssueVoucher_ExpiryIsTwoHours(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	hubID := testutil.CreateTestHub(t, db, "Rosa's Cafe", 10, 10)

	req := testutil.MakeRequest("POST", "/api/voucher/issue", models.IssueVoucherRequest{HubID: hubID}, nil)
	w := httptest.NewRecorder()
	handler.Issue(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.IssueVoucherResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.HubID != hubID {
		t.Errorf("Expected hubId %s, got %s", hubID, resp.HubID)
	}
	if resp.ID == "" {
		t.Error("Expected a voucher id")
	}

	// expires_at must be exactly issued_at + 7,200,000 ms
	var issuedAt, expiresAt int64
	err := db.QueryRow(`SELECT issued_at, expires_at FROM voucher WHERE id = $1`, resp.ID).Scan(&issuedAt, &expiresAt)
	if err != nil {
		t.Fatalf("Failed to read voucher row: %v", err)
	}
	if expiresAt-issuedAt != VoucherTTL.Milliseconds() {
		t.Errorf("Expected expiry offset %d ms, got %d", VoucherTTL.Milliseconds(), expiresAt-issuedAt)
	}
	if resp.ExpiresAt != expiresAt {
		t.Errorf("Response expiresAt %d does not match stored %d", resp.ExpiresAt, expiresAt)
	}
}

func TestIssueVoucher_DoesNotConsumeCapacity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	hubID := testutil.CreateTestHub(t, db, "Rosa's Cafe", 10, 10)

	// Issue several vouchers; remaining must not move
	for i := 0; i < 3; i++ {
		req := testutil.MakeRequest("POST", "/api/voucher/issue", models.IssueVoucherRequest{HubID: hubID}, nil)
		w := httptest.NewRecorder()
		handler.Issue(w, req)
		testutil.AssertStatus(t, w, 200)
	}

	if got := testutil.HubRemaining(t, db, hubID); got != 10 {
		t.Errorf("Issuance should not decrement: expected 10 remaining, got %d", got)
	}
}

func TestIssueVoucher_OverbookingAgainstLastUnit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	// One unit left; issuing twice is allowed by design
	hubID := testutil.CreateTestHub(t, db, "Last Slice Pizza", 5, 1)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/api/voucher/issue", models.IssueVoucherRequest{HubID: hubID}, nil)
		w := httptest.NewRecorder()
		handler.Issue(w, req)
		testutil.AssertStatus(t, w, 200)

		var resp models.IssueVoucherResponse
		testutil.AssertJSON(t, w, &resp)
		ids = append(ids, resp.ID)
	}

	// Both redeem fine; the floor keeps the count at zero
	for _, id := range ids {
		req := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: id}, nil)
		w := httptest.NewRecorder()
		handler.Redeem(w, req)
		testutil.AssertStatus(t, w, 200)
	}

	if got := testutil.HubRemaining(t, db, hubID); got != 0 {
		t.Errorf("Expected floor at 0 remaining, got %d", got)
	}
}

func TestRedeemVoucher_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: "V-doesnotexist"}, nil)
	w := httptest.NewRecorder()
	handler.Redeem(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestRedeemVoucher_IdempotentDecrement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	// Scenario: dailyCap=10, remaining=10. Issue V1 -> still 10.
	// Redeem V1 -> 9. Redeem V1 again -> already:true, still 9.
	hubID := testutil.CreateTestHub(t, db, "H1", 10, 10)
	voucherID := testutil.IssueTestVoucher(t, db, hubID)

	if got := testutil.HubRemaining(t, db, hubID); got != 10 {
		t.Fatalf("Expected 10 remaining after issuance, got %d", got)
	}

	req := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: voucherID}, nil)
	w := httptest.NewRecorder()
	handler.Redeem(w, req)
	testutil.AssertStatus(t, w, 200)

	var first models.RedeemVoucherResponse
	testutil.AssertJSON(t, w, &first)
	if !first.OK || first.Already {
		t.Errorf("First redeem: expected ok without already, got %+v", first)
	}
	if got := testutil.HubRemaining(t, db, hubID); got != 9 {
		t.Errorf("Expected 9 remaining after redeem, got %d", got)
	}

	req = testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: voucherID}, nil)
	w = httptest.NewRecorder()
	handler.Redeem(w, req)
	testutil.AssertStatus(t, w, 200)

	var second models.RedeemVoucherResponse
	testutil.AssertJSON(t, w, &second)
	if !second.OK || !second.Already {
		t.Errorf("Second redeem: expected ok with already, got %+v", second)
	}
	if got := testutil.HubRemaining(t, db, hubID); got != 9 {
		t.Errorf("Second redeem must not decrement again: expected 9, got %d", got)
	}
}

func TestRedeemVoucher_ExpiredStillRedeems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	hubID := testutil.CreateTestHub(t, db, "Slow Reader Library", 4, 4)

	// Insert a voucher that expired an hour ago
	id := "V-expired01"
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO voucher (id, hub_id, status, issued_at, expires_at)
		VALUES ($1, $2, 'issued', $3, $4)
	`, id, hubID, now-3*time.Hour.Milliseconds(), now-time.Hour.Milliseconds())
	if err != nil {
		t.Fatalf("Failed to insert expired voucher: %v", err)
	}

	// The server does not enforce expiry at redemption; the client's
	// countdown is the enforcement point.
	req := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: id}, nil)
	w := httptest.NewRecorder()
	handler.Redeem(w, req)
	testutil.AssertStatus(t, w, 200)

	if got := testutil.HubRemaining(t, db, hubID); got != 3 {
		t.Errorf("Expected 3 remaining, got %d", got)
	}
}

func TestRedeemVoucher_HubDeletedAfterIssuance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoucherHandler(db, cfg)

	hubID := testutil.CreateTestHub(t, db, "Doomed Diner", 5, 5)
	voucherID := testutil.IssueTestVoucher(t, db, hubID)

	if _, err := db.Exec(`DELETE FROM hub WHERE id = $1`, hubID); err != nil {
		t.Fatalf("Failed to delete hub: %v", err)
	}

	// Redemption still succeeds; the decrement finds no row
	req := testutil.MakeRequest("POST", "/api/voucher/redeem", models.RedeemVoucherRequest{ID: voucherID}, nil)
	w := httptest.NewRecorder()
	handler.Redeem(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.RedeemVoucherResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK {
		t.Errorf("Expected ok redeeming against a deleted hub, got %+v", resp)
	}
}
