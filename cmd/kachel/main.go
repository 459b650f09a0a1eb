// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the kachel tile server.
// It loads configuration, initializes storage once, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kachel/internal/cache"
	"kachel/internal/config"
	"kachel/internal/database"
	"kachel/internal/handlers"
	"kachel/internal/logging"
	"kachel/internal/middleware"
	"kachel/internal/router"
	"kachel/internal/storage"
	"kachel/internal/store"
	"kachel/internal/tile"
)

func main() {
	// Load configuration from the optional file and the environment.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(cfg.Log, os.Stdout)
	defer logCloser.Close()

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to the database and initialize it once before serving.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Initialize(db); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	blobs, err := openBlobs(cfg)
	if err != nil {
		slog.Error("failed to initialize blob storage", "error", err)
		os.Exit(1)
	}

	// Fonts are loaded once; missing or broken files fall back to the
	// built-in typefaces.
	fonts := tile.NewFontSet(cfg.Fonts.Regular, cfg.Fonts.Bold)
	regular, bold := fonts.Sources()
	slog.Info("fonts loaded", "regular", regular, "bold", bold)

	api := handlers.NewAPI(
		store.NewIconStore(db.DB),
		store.NewLayoutPresetStore(db.DB),
		store.NewColorPresetStore(db.DB),
		store.NewRenderStore(db.DB),
		blobs,
		tile.NewCompositor(fonts),
		cfg.PublicURL,
	)

	limiter, stopLimiter, err := openLimiter(cfg)
	if err != nil {
		slog.Error("failed to initialize rate limiter", "error", err)
		os.Exit(1)
	}
	defer stopLimiter()

	r := router.New(api, limiter)

	// Rendering is CPU-bound but bounded by the fixed tile size; uploads
	// may take longer on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openBlobs connects to S3 when configured and falls back to the local
// data directory otherwise.
func openBlobs(cfg *config.Config) (storage.Blobs, error) {
	if cfg.S3Enabled() {
		s3, err := storage.NewS3(storage.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s3.Check(ctx); err != nil {
			return nil, err
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)
		return s3, nil
	}

	local, err := storage.NewLocal(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	slog.Info("local storage ready", "dir", cfg.DataDir)
	return local, nil
}

// openLimiter picks the rate limiter: none when disabled, Valkey-backed
// when Valkey is configured, in-memory otherwise. The returned function
// releases its resources.
func openLimiter(cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.RateLimitPerMinute == 0 {
		slog.Warn("rate limiting disabled")
		return nil, func() {}, nil
	}

	if cfg.ValkeyEnabled() {
		client, err := cache.ConnectValkey(cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("valkey rate limiting enabled", "host", cfg.Valkey.Host, "per_minute", cfg.RateLimitPerMinute)
		counter := cache.NewWindowCounter(client, "kachel:ratelimit:")
		return middleware.NewValkeyLimiter(counter, cfg.RateLimitPerMinute, time.Minute), func() { client.Close() }, nil
	}

	rl := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	slog.Info("in-memory rate limiting enabled", "per_minute", cfg.RateLimitPerMinute)
	return rl, rl.Stop, nil
}
