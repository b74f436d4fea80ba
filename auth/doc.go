// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and credential checks for the
CommonKind API.

Two independent credentials gate admin surfaces:

  - The shared admin password mints 24-hour bearer tokens for the human
    dashboard (login, hub edits, per-hub resets).
  - A separate machine secret, sent in the x-admin-secret header,
    gates the full demo reset endpoint used by the scheduled job.

Tokens are opaque random strings with an adm_ prefix; validity lives in
the admin_token table and is checked by middleware.RequireAdmin.
*/
package auth
