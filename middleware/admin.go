// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaylew1421/commonkind/auth"
)

// RequireAdmin gates a handler behind a valid admin bearer token.
// Expired tokens are evicted on lookup; there is no background sweep.
func RequireAdmin(db *sql.DB, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if token == "" || !tokenIsValid(db, token) {
			ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// RequireSecret gates a handler behind the machine reset secret in the
// x-admin-secret header. Decoupled from bearer auth so the scheduled
// reset job never needs a login.
func RequireSecret(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.CheckSecret(r.Header.Get("x-admin-secret"), secret); err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func tokenIsValid(db *sql.DB, token string) bool {
	var expiresAt int64
	err := db.QueryRow(`SELECT expires_at FROM admin_token WHERE token = $1`, token).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Error("failed to look up admin token", "error", err)
		return false
	}

	if time.Now().UnixMilli() > expiresAt {
		// Lazy eviction
		if _, err := db.Exec(`DELETE FROM admin_token WHERE token = $1`, token); err != nil {
			slog.Error("failed to evict expired admin token", "error", err)
		}
		return false
	}

	return true
}
