// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaylew1421/commonkind/auth"
	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/models"
)

// VoucherTTL is how long an issued voucher stays valid on the client's
// countdown. The server records expires_at but does not enforce it at
// redemption; the countdown UI is the enforcement point.
const VoucherTTL = 2 * time.Hour

type VoucherHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoucherHandler(database *sql.DB, cfg cliparse.Config) *VoucherHandler {
	return &VoucherHandler{db: database, cfg: cfg}
}

// Issue handles POST /api/voucher/issue
// Capacity is checked here but not consumed: the decrement happens at
// redemption, so several vouchers can be issued against the last
// remaining unit. Overbooking is accepted; only redemptions count.
func (h *VoucherHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req models.IssueVoucherRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var remaining int
	err := h.db.QueryRow(`SELECT vouchers_remaining FROM hub WHERE id = $1`, req.HubID).Scan(&remaining)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hub not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if remaining <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No vouchers remaining")
		return
	}

	id, err := auth.GenerateVoucherID()
	if err != nil {
		slog.Error("failed to generate voucher ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue voucher")
		return
	}

	now := time.Now().UnixMilli()
	expiresAt := now + VoucherTTL.Milliseconds()

	_, err = h.db.Exec(`
		INSERT INTO voucher (id, hub_id, status, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, req.HubID, models.VoucherIssued, now, expiresAt)
	if err != nil {
		slog.Error("failed to insert voucher", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue voucher")
		return
	}

	slog.Info("voucher issued", "voucher_id", id, "hub_id", req.HubID)

	middleware.JSONResponse(w, http.StatusOK, models.IssueVoucherResponse{
		ID:        id,
		HubID:     req.HubID,
		ExpiresAt: expiresAt,
	})
}

// Redeem handles POST /api/voucher/redeem
// Idempotent: redeeming an already-redeemed voucher answers ok with an
// already marker and decrements nothing. Expiry is not checked here.
func (h *VoucherHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemVoucherRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var hubID, status string
	err := h.db.QueryRow(`SELECT hub_id, status FROM voucher WHERE id = $1`, req.ID).Scan(&hubID, &status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voucher not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voucher", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status == models.VoucherRedeemed {
		middleware.JSONResponse(w, http.StatusOK, models.RedeemVoucherResponse{OK: true, Already: true})
		return
	}

	// Conditional flip so two simultaneous redeems of the same id can
	// only decrement once: the loser of the race sees zero rows
	// affected and answers already:true.
	res, err := h.db.Exec(`
		UPDATE voucher SET status = $1 WHERE id = $2 AND status = $3
	`, models.VoucherRedeemed, req.ID, models.VoucherIssued)
	if err != nil {
		slog.Error("failed to mark voucher redeemed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to redeem voucher")
		return
	}

	flipped, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to redeem voucher")
		return
	}
	if flipped == 0 {
		middleware.JSONResponse(w, http.StatusOK, models.RedeemVoucherResponse{OK: true, Already: true})
		return
	}

	// Floored decrement. The hub row may be gone if an admin deleted
	// the hub after issuance; redemption still succeeds.
	_, err = h.db.Exec(`
		UPDATE hub SET vouchers_remaining = MAX(0, vouchers_remaining - 1) WHERE id = $1
	`, hubID)
	if err != nil {
		slog.Error("failed to decrement hub capacity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to redeem voucher")
		return
	}

	slog.Info("voucher redeemed", "voucher_id", req.ID, "hub_id", hubID)

	middleware.JSONResponse(w, http.StatusOK, models.RedeemVoucherResponse{OK: true})
}
