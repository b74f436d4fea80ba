// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaylew1421/commonkind/auth"
	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/models"
)

// TokenTTL is the admin session lifetime.
const TokenTTL = 24 * time.Hour

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(database *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: database, cfg: cfg}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password required")
		return
	}

	if err := auth.CheckPassword(req.Password, h.cfg.AdminPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := auth.GenerateAdminToken()
	if err != nil {
		slog.Error("failed to generate admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	now := time.Now().UnixMilli()
	_, err = h.db.Exec(`
		INSERT INTO admin_token (token, issued_at, expires_at)
		VALUES ($1, $2, $3)
	`, token, now, now+TokenTTL.Milliseconds())
	if err != nil {
		slog.Error("failed to store admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in")

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{OK: true, Token: token})
}

// Me handles GET /api/admin/me
// The bearer token was already validated by RequireAdmin; this is the
// client's "who am I" probe after loading a stored token.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.AdminMeResponse{OK: true, Role: "admin"})
}

// ResetAll handles POST /api/admin/reset
// Machine endpoint for the day-rollover job: restores every hub to its
// daily cap and clears the voucher ledger, so pre-reset voucher ids
// become unknown. Plain-text response for the job's logs.
func (h *AdminHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.db.Exec(`UPDATE hub SET vouchers_remaining = daily_cap`); err != nil {
		slog.Error("failed to reset hub capacities", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset")
		return
	}

	res, err := h.db.Exec(`DELETE FROM voucher`)
	if err != nil {
		slog.Error("failed to clear voucher ledger", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset")
		return
	}

	cleared, err := res.RowsAffected()
	if err != nil {
		cleared = 0
	}

	var hubCount int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM hub`).Scan(&hubCount); err != nil {
		hubCount = 0
	}

	slog.Info("demo state reset", "hubs", hubCount, "vouchers_cleared", cleared)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "reset ok: %d hubs restored, %d vouchers cleared\n", hubCount, cleared)
}
