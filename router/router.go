// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/handlers"
	"github.com/kaylew1421/commonkind/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	hubHandler := handlers.NewHubHandler(db, cfg)
	voucherHandler := handlers.NewVoucherHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	aiHandler := handlers.NewAIHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Hubs (public)
	mux.HandleFunc("GET /api/hubs", middleware.WithLogging(hubHandler.ListHubs))

	// Voucher workflow (public)
	mux.HandleFunc("POST /api/voucher/issue", middleware.WithLogging(voucherHandler.Issue))
	mux.HandleFunc("POST /api/voucher/redeem", middleware.WithLogging(voucherHandler.Redeem))

	// Admin auth
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/me", middleware.WithLogging(middleware.RequireAdmin(db, adminHandler.Me)))

	// Hub management (bearer token)
	mux.HandleFunc("POST /api/admin/hubs", middleware.WithLogging(middleware.RequireAdmin(db, hubHandler.CreateHub)))
	mux.HandleFunc("PUT /api/admin/hubs/{id}", middleware.WithLogging(middleware.RequireAdmin(db, hubHandler.UpdateHub)))
	mux.HandleFunc("DELETE /api/admin/hubs/{id}", middleware.WithLogging(middleware.RequireAdmin(db, hubHandler.DeleteHub)))
	mux.HandleFunc("POST /api/admin/hubs/{id}/reset", middleware.WithLogging(middleware.RequireAdmin(db, hubHandler.ResetHub)))

	// Machine reset (x-admin-secret)
	mux.HandleFunc("POST /api/admin/reset", middleware.WithLogging(middleware.RequireSecret(cfg.AdminSecret, adminHandler.ResetAll)))

	// Chat proxy
	mux.HandleFunc("POST /api/ai", middleware.WithLogging(aiHandler.Ask))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("commonkind API v1"))
	})

	return mux
}
