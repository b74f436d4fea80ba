// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command resetdemo restores every hub's voucher count and clears the
// voucher ledger by calling the API's machine reset endpoint. It is
// meant to run on a schedule against a demo deployment.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kaylew1421/commonkind/client"
	"github.com/kaylew1421/commonkind/logging"
)

func main() {
	godotenv.Load()
	logging.Setup(os.Stderr, os.Getenv("LOG_LEVEL"))

	apiBase := os.Getenv("API_BASE")
	adminSecret := os.Getenv("ADMIN_SECRET")
	if apiBase == "" || adminSecret == "" {
		slog.Error("Missing API_BASE or ADMIN_SECRET")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(apiBase, "")
	c.SetSecret(adminSecret)

	out, err := c.ResetAll(ctx)
	if err != nil {
		slog.Error("Reset failed", "error", err)
		os.Exit(2)
	}

	slog.Info("Reset response", "body", out)
}
