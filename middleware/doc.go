// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers for the
CommonKind API.

# Middleware

  - WithLogging: request/completion logging via slog
  - CORS: permissive cross-origin headers for the map client
  - RequireAdmin: admin bearer token gate with lazy token eviction
  - RequireSecret: x-admin-secret gate for the machine reset endpoint

# Helpers

  - JSONResponse: write a JSON response with status code
  - ErrorResponse: write a standard JSON error body
  - ParseJSONBody: decode a request body into a struct
*/
package middleware
