package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/stackit/cliparse"
	"github.com/danielhkuo/stackit/db"
	"github.com/danielhkuo/stackit/handlers"
	"github.com/danielhkuo/stackit/router"
	"github.com/danielhkuo/stackit/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// A .env file is optional; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the store
	gdb, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)

	// Create schema (tables)
	if err := db.Migrate(gdb); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if len(cfg.AdminUsernames) > 0 {
		n, err := store.New(gdb).PromoteAdmins(context.Background(), cfg.AdminUsernames)
		if err != nil {
			slog.Error("admin promotion failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Admins promoted", "requested", len(cfg.AdminUsernames), "changed", n)
	}

	env, err := handlers.NewEnv(gdb, cfg)
	if err != nil {
		slog.Error("handler setup failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(env)

	// Create server
	server := http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight requests finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
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
