package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/db"
	"github.com/kaylew1421/commonkind/logging"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/router"
)

func main() {
	var err error

	// Load .env if present (dev convenience; real deploys set env vars)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.LogLevel)

	// Open the in-memory SQLite store. A :memory: database exists per
	// connection, so the pool is pinned to a single connection; that
	// also serializes every request on one writer.
	dbConn, err := sql.Open("sqlite", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	// Seed hubs from the flat file. Vouchers and admin tokens start
	// empty on every boot; that reset is intentional demo behavior.
	count, err := db.LoadHubSeed(dbConn, cfg.SeedPath)
	if err != nil {
		slog.Error("hub seed failed", "error", err, "path", cfg.SeedPath)
		os.Exit(1)
	}
	slog.Info("Hub registry ready", "hubs", count)

	if cfg.AdminSecret == "" {
		slog.Warn("ADMIN_SECRET not set; machine reset endpoint disabled")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
