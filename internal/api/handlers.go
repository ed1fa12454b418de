// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"context"
	"net/http"

	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/service"
	"github.com/commune-social/commune/internal/upload"
	"github.com/commune-social/commune/internal/websocket"
)

// Pinger reports document store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries everything the endpoints need.
type Handler struct {
	svc     *service.Services
	tokens  *auth.JWTManager
	uploads upload.Store
	hub     *websocket.Hub
	db      Pinger
	cfg     *config.Config
}

// NewHandler builds the endpoint set.
func NewHandler(svc *service.Services, tokens *auth.JWTManager, uploads upload.Store, hub *websocket.Hub, db Pinger, cfg *config.Config) *Handler {
	return &Handler{
		svc:     svc,
		tokens:  tokens,
		uploads: uploads,
		hub:     hub,
		db:      db,
		cfg:     cfg,
	}
}

// Register creates an account and returns a session token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.svc.Auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"token": token})
}

// Login checks credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

// Health answers liveness probes and verifies the document store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorEnvelope{
			Status:  "error",
			Message: "Document store unreachable",
			Code:    http.StatusServiceUnavailable,
			Data:    nil,
		})
		return
	}
	writeData(w, http.StatusOK, map[string]string{"mongo": "up"})
}
