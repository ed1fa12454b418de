// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/commune-social/commune/internal/service"
)

// AddReport attaches a report to a user, group, page, or post. One
// handler serves the reports route under every entity prefix.
func (h *Handler) AddReport(w http.ResponseWriter, r *http.Request) {
	var req addReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.svc.Reports.Add(r.Context(), service.ReportKind(req.Type), mustObjectID(req.ReportedItemID), mustObjectID(req.ReportedBy), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Report added successfully")
}

// RemoveReport withdraws a report. Reporter only.
func (h *Handler) RemoveReport(w http.ResponseWriter, r *http.Request) {
	var req removeReportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.svc.Reports.Remove(r.Context(), service.ReportKind(req.Type), mustObjectID(req.ReportedItemID), mustObjectID(req.UserID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Report removed successfully")
}

// SearchEntities searches users, groups, or pages by name. The term
// rides in the path and the entity kind in the body.
func (h *Handler) SearchEntities(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "searchTerm")

	var req searchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	limit, skip := pagination(r, &h.cfg.API)
	results, err := h.svc.Search.Search(r.Context(), service.SearchKind(req.Type), term, limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{req.Type: results})
}
