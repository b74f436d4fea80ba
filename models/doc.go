// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared
across the CommonKind API.

# Wire Format Notes

All timestamps that cross the wire (voucher expiry, token expiry,
donation/activity timestamps) are epoch milliseconds, matching what the
web client stores and compares against Date.now().

Field names use camelCase JSON tags (hubId, dailyCap,
vouchersRemaining) because the map client consumes the API directly.

# Server vs Client Types

Hub, Voucher, and AdminToken are server-side records. HubApplication,
Donation, and ActivityEvent exist only in the client's application
state; the server has no table for them.
*/
package models
