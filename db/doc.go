// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns schema creation and hub seed loading for the in-memory
SQLite store.

The whole server runs against a single-connection :memory: database:
vouchers and admin tokens vanish on restart, and hubs reload from
data/hubs.json at boot. That reset-on-restart behavior is intentional
(demo state), not a durability bug.
*/
package db
