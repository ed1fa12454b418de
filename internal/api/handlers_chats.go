// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
)

// GetAllChats lists the caller's chats. The user id arrives as a query
// parameter.
func (h *Handler) GetAllChats(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	chats, err := h.svc.Chats.GetAllForUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"chats": chats})
}

// CreateOrGetChat returns the chat between two users, creating it when
// none exists yet.
func (h *Handler) CreateOrGetChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	chat, err := h.svc.Chats.CreateOrGet(r.Context(), mustObjectID(req.FirstUserID), mustObjectID(req.SecondUserID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"chat": chat})
}

// SendMessage persists a message. Delivery to connected room members
// goes over the websocket relay, which is a separate path.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathObjectID(r, "chatId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid chat id"))
		return
	}

	var req sendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	message, err := h.svc.Chats.SendMessage(r.Context(), chatID, mustObjectID(req.SenderID), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"message": message})
}

// UpdateOrDeleteMessage edits or removes a message, sender only.
func (h *Handler) UpdateOrDeleteMessage(w http.ResponseWriter, r *http.Request) {
	chatID, err := pathObjectID(r, "chatId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid chat id"))
		return
	}

	var req updateOrDeleteMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	senderID := mustObjectID(req.SenderID)
	messageID := mustObjectID(req.MessageID)

	if req.Type == "update" {
		if err := h.svc.Chats.UpdateMessage(r.Context(), chatID, senderID, messageID, req.NewContent); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Message updated successfully")
		return
	}

	if err := h.svc.Chats.DeleteMessage(r.Context(), chatID, senderID, messageID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Message deleted successfully")
}
