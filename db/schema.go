// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Hubs
CREATE TABLE IF NOT EXISTS hub (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    lat REAL NOT NULL DEFAULT 0,
    lng REAL NOT NULL DEFAULT 0,
    hours TEXT NOT NULL DEFAULT '',
    offer TEXT NOT NULL DEFAULT '',
    daily_cap INTEGER NOT NULL DEFAULT 0,
    vouchers_remaining INTEGER NOT NULL DEFAULT 0,
    type TEXT NOT NULL DEFAULT 'Restaurant' CHECK (type IN ('Restaurant', 'Grocery', 'Church', 'Library')),
    phone TEXT NOT NULL DEFAULT '',
    requirements TEXT NOT NULL DEFAULT '[]',
    self_attestation INTEGER NOT NULL DEFAULT 0
);

-- Vouchers
-- hub_id is deliberately not a foreign key: deleting a hub must leave
-- outstanding vouchers redeemable (the decrement just finds no row).
CREATE TABLE IF NOT EXISTS voucher (
    id TEXT PRIMARY KEY,
    hub_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'issued' CHECK (status IN ('issued', 'redeemed')),
    issued_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voucher_hub_id ON voucher(hub_id);

-- Admin bearer tokens
CREATE TABLE IF NOT EXISTS admin_token (
    token TEXT PRIMARY KEY,
    issued_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL
);
`
