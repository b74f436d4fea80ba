// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CommonKind API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - HubHandler: Hub listing and admin CRUD + capacity reset
  - VoucherHandler: Voucher issuance and redemption
  - AdminHandler: Admin login, token probe, full demo reset
  - AIHandler: Chat proxy with timeout and canned fallback

Handlers are created via constructor functions that accept *sql.DB and Config:

	hubHandler := handlers.NewHubHandler(db, cfg)

# Voucher Lifecycle

Vouchers move through a single transition: issued → redeemed.

	POST /api/voucher/issue  → Issue (checks capacity, does NOT consume it)
	POST /api/voucher/redeem → Redeem (consumes capacity, idempotent)

Capacity is consumed at redemption only. Issuing never decrements, so
several vouchers can be outstanding against one remaining unit; the
floor at zero makes the extras harmless. Double redemption returns
{ok:true, already:true} without a second decrement.

Expiry (expires_at, 2 hours after issuance) is advisory: the client
shows a countdown, the server redeems regardless.

# Admin Surfaces

Human dashboard operations require a bearer token from /api/admin/login
(see middleware.RequireAdmin). The full demo reset at /api/admin/reset
is gated by a separate x-admin-secret header so the scheduled reset job
never holds a login credential; it restores every hub to dailyCap and
clears the voucher table.

# Chat Proxy

POST /api/ai always answers 200. With no upstream configured, or on
any upstream timeout or error, the handler answers from a canned path
and marks the response mock:true.
*/
package handlers
