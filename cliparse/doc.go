// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: SQLite DSN (default: :memory:)
  - SeedPath: Hub seed JSON path (default: data/hubs.json)
  - AdminPassword: Dashboard login password (default: demo password)
  - AdminSecret: Machine reset secret (no default; endpoint stays closed)
  - AIEndpoint / AIAPIKey: Upstream chat service; mock answers when unset
  - AITimeout: Upstream deadline, clamped to 12-28 seconds
  - LogLevel: debug, info, warn, error (default: info)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	SEED_PATH          → -seed
	ADMIN_PASSWORD     → -admin-password
	ADMIN_SECRET       → -admin-secret
	AI_ENDPOINT        → -ai-endpoint
	AI_API_KEY         → -ai-key
	AI_TIMEOUT_SECONDS → -ai-timeout
	LOG_LEVEL          → -log-level

CLI flags take precedence over environment variables. A .env file in
the working directory is loaded by main before parsing.
*/
package cliparse
