// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client provides a typed HTTP client for the CommonKind API.
// It covers the public voucher endpoints, the admin hub management
// endpoints, the machine reset hook, and the AI assistant proxy.
// Non-2xx responses surface as *HTTPError.
package client
