// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/service"
)

// GetAllPages lists pages.
func (h *Handler) GetAllPages(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r, &h.cfg.API)
	pages, err := h.svc.Pages.GetAll(r.Context(), limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"pages": pages})
}

// GetPageByID returns one page.
func (h *Handler) GetPageByID(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathObjectID(r, "pageId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid page ID"))
		return
	}

	page, err := h.svc.Pages.GetByID(r.Context(), pageID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"page": page})
}

// CreatePage stores a new page owned by the creator.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req createPageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	page, err := h.svc.Pages.Create(r.Context(), service.CreatePageInput{
		PageName:  req.PageName,
		CreatedBy: mustObjectID(req.CreatedBy),
		PageCover: req.PageCover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"page": page})
}

// UpdatePage applies owner-only changes.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathObjectID(r, "pageId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid page id"))
		return
	}

	var req updatePageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	page, err := h.svc.Pages.Update(r.Context(), pageID, mustObjectID(req.UserID), service.UpdatePageInput{
		PageName:  req.PageName,
		PageCover: req.PageCover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"page": page})
}

// DeletePage soft-deletes a page. Owner only.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathObjectID(r, "pageId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid page id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Pages.Delete(r.Context(), pageID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Page deleted successfully")
}

// FollowPage adds the caller to the followers and notifies the owner.
func (h *Handler) FollowPage(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathObjectID(r, "pageId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid page id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.svc.Pages.Follow(r.Context(), pageID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You are now following this page")
}

// UnfollowPage removes the caller from the followers.
func (h *Handler) UnfollowPage(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathObjectID(r, "pageId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid page id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.svc.Pages.Unfollow(r.Context(), pageID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You are not following this page anymore")
}
