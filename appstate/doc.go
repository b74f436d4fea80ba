// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package appstate holds the client-side application state: a mirror
// of the hub registry with an offline fallback, the active voucher,
// donations, hub applications, a capped activity feed, and dashboard
// metrics. Voucher redemption is optimistic: the local decrement is
// applied even when the server call fails, and the error is returned
// so the caller can surface the drift.
package appstate
