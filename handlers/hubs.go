// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kaylew1421/commonkind/auth"
	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/db"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/models"
)

type HubHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewHubHandler(database *sql.DB, cfg cliparse.Config) *HubHandler {
	return &HubHandler{db: database, cfg: cfg}
}

// ListHubs handles GET /api/hubs
// Returns all hubs unfiltered; radius and type filtering happen
// entirely client-side.
func (h *HubHandler) ListHubs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT ` + db.HubColumns + ` FROM hub`)
	if err != nil {
		slog.Error("failed to query hubs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	hubs := []models.Hub{}
	for rows.Next() {
		hub, err := db.ScanHub(rows)
		if err != nil {
			slog.Error("failed to scan hub", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		hubs = append(hubs, hub)
	}

	middleware.JSONResponse(w, http.StatusOK, hubs)
}

// CreateHub handles POST /api/admin/hubs
func (h *HubHandler) CreateHub(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHubRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validHubType(req.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be one of: Restaurant, Grocery, Church, Library")
		return
	}
	if req.DailyCap < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "dailyCap must be non-negative")
		return
	}

	id, err := auth.GenerateHubID()
	if err != nil {
		slog.Error("failed to generate hub ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hub")
		return
	}

	hub := models.Hub{
		ID:                id,
		Name:              req.Name,
		Address:           req.Address,
		Lat:               req.Lat,
		Lng:               req.Lng,
		Hours:             req.Hours,
		Offer:             req.Offer,
		DailyCap:          req.DailyCap,
		VouchersRemaining: req.DailyCap,
		Type:              req.Type,
		Phone:             req.Phone,
		Requirements:      req.Requirements,
		SelfAttestation:   req.SelfAttestation,
	}

	if err := db.InsertHub(h.db, hub); err != nil {
		slog.Error("failed to insert hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hub")
		return
	}

	slog.Info("hub created", "hub_id", hub.ID, "name", hub.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.HubResponse{OK: true, Hub: hub})
}

// UpdateHub handles PUT /api/admin/hubs/{id}
// Merges the provided fields into the hub. Numeric fields are taken
// as-is; there is no upper-bound check of vouchersRemaining against
// dailyCap on manual edits.
func (h *HubHandler) UpdateHub(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hub id is required")
		return
	}

	var req models.UpdateHubRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	hub, err := h.getHub(id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hub not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	applyHubUpdate(&hub, req)

	if !validHubType(hub.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be one of: Restaurant, Grocery, Church, Library")
		return
	}

	reqs, err := json.Marshal(hub.Requirements)
	if err != nil {
		slog.Error("failed to encode requirements", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update hub")
		return
	}

	selfAttest := 0
	if hub.SelfAttestation {
		selfAttest = 1
	}

	_, err = h.db.Exec(`
		UPDATE hub
		SET name = $1, address = $2, lat = $3, lng = $4, hours = $5, offer = $6,
		    daily_cap = $7, vouchers_remaining = $8, type = $9, phone = $10,
		    requirements = $11, self_attestation = $12
		WHERE id = $13
	`, hub.Name, hub.Address, hub.Lat, hub.Lng, hub.Hours, hub.Offer,
		hub.DailyCap, hub.VouchersRemaining, hub.Type, hub.Phone,
		string(reqs), selfAttest, id)
	if err != nil {
		slog.Error("failed to update hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update hub")
		return
	}

	slog.Info("hub updated", "hub_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.HubResponse{OK: true, Hub: hub})
}

// DeleteHub handles DELETE /api/admin/hubs/{id}
// No referential check against outstanding vouchers: a voucher issued
// for this hub can still be redeemed afterward, and its decrement
// simply finds no row.
func (h *HubHandler) DeleteHub(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hub id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM hub WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete hub")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete hub")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hub not found")
		return
	}

	slog.Info("hub deleted", "hub_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// ResetHub handles POST /api/admin/hubs/{id}/reset
// Restores the hub's remaining vouchers to its daily cap.
func (h *HubHandler) ResetHub(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hub id is required")
		return
	}

	res, err := h.db.Exec(`UPDATE hub SET vouchers_remaining = daily_cap WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to reset hub", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset hub")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset hub")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hub not found")
		return
	}

	hub, err := h.getHub(id)
	if err != nil {
		slog.Error("failed to query hub after reset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("hub capacity reset", "hub_id", id, "vouchers_remaining", hub.VouchersRemaining)

	middleware.JSONResponse(w, http.StatusOK, models.HubResponse{OK: true, Hub: hub})
}

func (h *HubHandler) getHub(id string) (models.Hub, error) {
	row := h.db.QueryRow(`SELECT `+db.HubColumns+` FROM hub WHERE id = $1`, id)
	return db.ScanHub(row)
}

func applyHubUpdate(hub *models.Hub, req models.UpdateHubRequest) {
	if req.Name != nil {
		hub.Name = *req.Name
	}
	if req.Address != nil {
		hub.Address = *req.Address
	}
	if req.Lat != nil {
		hub.Lat = *req.Lat
	}
	if req.Lng != nil {
		hub.Lng = *req.Lng
	}
	if req.Hours != nil {
		hub.Hours = *req.Hours
	}
	if req.Offer != nil {
		hub.Offer = *req.Offer
	}
	if req.DailyCap != nil {
		hub.DailyCap = *req.DailyCap
	}
	if req.VouchersRemaining != nil {
		hub.VouchersRemaining = *req.VouchersRemaining
	}
	if req.Type != nil {
		hub.Type = *req.Type
	}
	if req.Phone != nil {
		hub.Phone = *req.Phone
	}
	if req.Requirements != nil {
		hub.Requirements = *req.Requirements
	}
	if req.SelfAttestation != nil {
		hub.SelfAttestation = *req.SelfAttestation
	}
}

func validHubType(t string) bool {
	switch t {
	case models.HubTypeRestaurant, models.HubTypeGrocery, models.HubTypeChurch, models.HubTypeLibrary:
		return true
	}
	return false
}
