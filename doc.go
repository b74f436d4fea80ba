// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CommonKind API server.

CommonKind is a community meal-voucher locator: a map client lists
participating hubs (restaurants, groceries, churches, libraries), hands
out single-use QR vouchers, and lets hubs redeem them by scan or manual
code entry.

# Starting the Server

The server runs entirely on demo-grade in-memory state:

	ADMIN_PASSWORD=... ADMIN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8080 -seed data/hubs.json

# Configuration

Optional settings (all have dev defaults except the reset secret):

  - PORT (-p): Server port (default: 8080)
  - DATABASE_URL (-d): SQLite DSN (default: :memory:)
  - SEED_PATH (-seed): Hub seed JSON (default: data/hubs.json)
  - ADMIN_PASSWORD (-admin-password): Dashboard login
  - ADMIN_SECRET (-admin-secret): Machine reset secret; the reset
    endpoint answers 401 until this is set
  - AI_ENDPOINT / AI_API_KEY: Upstream chat model; mock answers if unset

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (hubs, vouchers, admin, ai)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, admin gates
  - models: Request/response types
  - auth: Token generation and credential checks
  - db: Schema creation and hub seed loading
  - cliparse: Configuration parsing
  - client, appstate: the Go client mirror of the web app's state

See package documentation for each component.
*/
package main
