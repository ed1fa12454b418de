// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package main is the entry point for the Commune server.
//
// Commune is a self-hosted social network backend: accounts, friends,
// follows, groups, pages, posts with comments and likes, one-to-one
// chats with a realtime websocket relay, moderation reports, and
// search.
//
// # Startup order
//
//  1. Configuration: koanf v2 layering environment variables over a
//     config file over built-in defaults
//  2. Logging: zerolog, configured from the loaded settings
//  3. MongoDB: document stores for users, groups, pages, posts, chats
//  4. Auth: bcrypt password hashing, JWT session tokens, casbin roles
//  5. Uploads: local disk store behind a circuit breaker
//  6. Supervisor tree: the websocket hub and the HTTP server run as
//     suture services restarted independently on failure
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests within the configured timeout, the hub closes its
// client connections, then the Mongo client disconnects.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/commune-social/commune/internal/api"
	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/authz"
	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/database"
	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/service"
	"github.com/commune-social/commune/internal/supervisor"
	"github.com/commune-social/commune/internal/upload"
	ws "github.com/commune-social/commune/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("database", cfg.Mongo.Database).
		Msg("Starting Commune")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, &cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()

	tokens, err := auth.NewJWTManager(&cfg.Auth)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize role enforcer")
	}

	diskStore, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSizeBytes)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize upload store")
	}
	uploads := upload.NewBreakerStore(diskStore)

	svc := service.New(service.Stores{
		Users:  db.Users,
		Groups: db.Groups,
		Pages:  db.Pages,
		Posts:  db.Posts,
		Chats:  db.Chats,
	}, tokens, hasher)

	hub := ws.NewHub()
	handler := api.NewHandler(svc, tokens, uploads, hub, db, cfg)
	router := api.NewRouter(handler, enforcer, api.NewChiMiddleware(&cfg.Security))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddRealtimeService(hub)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Server listening")

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
