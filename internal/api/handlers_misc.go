// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"errors"
	"net/http"

	gorilla "github.com/gorilla/websocket"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/upload"
	"github.com/commune-social/commune/internal/websocket"
)

// upgrader accepts any origin. The relay performs no authorization
// beyond the token check on upgrade, so origin pinning buys nothing;
// CORS protects the REST surface.
var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WebSocket upgrades the connection and attaches it to the chat relay.
// The session token rides in the query string because browser websocket
// clients cannot set an Authorization header.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeAppError(w, apperr.New("No token found in the header", http.StatusUnauthorized, apperr.StatusError))
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		writeAppError(w, apperr.New("Invalid JWT token", http.StatusUnauthorized, apperr.StatusError))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.ID, h.cfg.Websocket.MessageRate, h.cfg.Websocket.MessageBurst)
	h.hub.Register <- client
	client.Start()
}

// Upload stores a multipart file and returns the URL it is served at.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// One extra megabyte for the multipart framing around the capped file.
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxSizeBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, apperr.BadRequest("No file provided in the file field"))
		return
	}
	defer file.Close()

	url, err := h.uploads.Save(r.Context(), header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			writeError(w, r, apperr.BadRequestFail("File exceeds the maximum upload size"))
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			writeError(w, r, apperr.New("Upload storage temporarily unavailable", http.StatusServiceUnavailable, apperr.StatusError))
		default:
			writeError(w, r, err)
		}
		return
	}
	writeData(w, http.StatusCreated, map[string]string{"url": url})
}
