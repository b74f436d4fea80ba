// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines all HTTP routes for the CommonKind API using
Go 1.22+ method-and-pattern routing on http.ServeMux.

Public routes serve the map client (hub list, voucher issue/redeem,
chat). Admin routes are gated by middleware.RequireAdmin; the machine
reset route is gated by middleware.RequireSecret instead.
*/
package router
