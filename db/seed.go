// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaylew1421/commonkind/models"
)

// LoadHubSeed reads the hub seed JSON and inserts every hub.
// Called once at process start; the in-memory database is empty then,
// so a plain INSERT is enough. Rows load exactly as written, so a
// seed entry may start a hub depleted.
func LoadHubSeed(db *sql.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read hub seed: %w", err)
	}

	var hubs []models.Hub
	if err := json.Unmarshal(raw, &hubs); err != nil {
		return 0, fmt.Errorf("failed to parse hub seed: %w", err)
	}

	for _, h := range hubs {
		if err := InsertHub(db, h); err != nil {
			return 0, fmt.Errorf("failed to seed hub %s: %w", h.ID, err)
		}
	}

	return len(hubs), nil
}

// InsertHub inserts a single hub row.
func InsertHub(db *sql.DB, h models.Hub) error {
	reqs, err := json.Marshal(h.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO hub (id, name, address, lat, lng, hours, offer, daily_cap, vouchers_remaining, type, phone, requirements, self_attestation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, h.ID, h.Name, h.Address, h.Lat, h.Lng, h.Hours, h.Offer, h.DailyCap, h.VouchersRemaining, h.Type, h.Phone, string(reqs), boolToInt(h.SelfAttestation))
	if err != nil {
		return err
	}
	return nil
}

// ScanHub scans a full hub row in schema column order.
func ScanHub(row interface{ Scan(...any) error }) (models.Hub, error) {
	var h models.Hub
	var reqs string
	var selfAttest int

	err := row.Scan(&h.ID, &h.Name, &h.Address, &h.Lat, &h.Lng, &h.Hours, &h.Offer,
		&h.DailyCap, &h.VouchersRemaining, &h.Type, &h.Phone, &reqs, &selfAttest)
	if err != nil {
		return models.Hub{}, err
	}

	if err := json.Unmarshal([]byte(reqs), &h.Requirements); err != nil {
		return models.Hub{}, fmt.Errorf("failed to decode requirements for hub %s: %w", h.ID, err)
	}
	h.SelfAttestation = selfAttest != 0

	return h, nil
}

// HubColumns is the SELECT list matching ScanHub's scan order.
const HubColumns = "id, name, address, lat, lng, hours, offer, daily_cap, vouchers_remaining, type, phone, requirements, self_attestation"

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
