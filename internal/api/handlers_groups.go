// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"fmt"
	"net/http"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/service"
)

// GetAllGroups lists groups.
func (h *Handler) GetAllGroups(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r, &h.cfg.API)
	groups, err := h.svc.Groups.GetAll(r.Context(), limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"groups": groups})
}

// GetGroupByID returns one group.
func (h *Handler) GetGroupByID(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	group, err := h.svc.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"group": group})
}

// CreateGroup stores a new group owned by the creator.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.svc.Groups.Create(r.Context(), service.CreateGroupInput{
		GroupName:  req.GroupName,
		CreatedBy:  mustObjectID(req.CreatedBy),
		IsPrivate:  req.IsPrivate,
		GroupCover: req.GroupCover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"group": group})
}

// UpdateGroup applies owner-only changes.
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	var req updateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.svc.Groups.Update(r.Context(), groupID, mustObjectID(req.UserID), service.UpdateGroupInput{
		GroupName:  req.GroupName,
		GroupCover: req.GroupCover,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"group": group})
}

// DeleteGroup soft-deletes a group. Owner only, terminal.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Groups.Delete(r.Context(), groupID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Group deleted successfully")
}

// JoinGroup adds a member to a public group or queues a join request on
// a private one.
func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	var req joinGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.svc.Groups.Join(r.Context(), mustObjectID(req.UserID), groupID, req.Notifications)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if status == service.JoinStatusJoined {
		writeMessage(w, http.StatusOK, "You have joined this group successfully")
		return
	}
	writeMessage(w, http.StatusOK, "You have made a join request to this group, admins will review your request")
}

// HandleJoinRequest lets an admin accept or decline a pending request.
func (h *Handler) HandleJoinRequest(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	var req handleJoinRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	accepted := req.Status == "accepted"
	err = h.svc.Groups.HandleJoinRequest(r.Context(), groupID, mustObjectID(req.AdminID), mustObjectID(req.RequestingUserID), accepted)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("You have %s this request successfully", req.Status))
}

// LeaveGroup removes the caller from a group's membership.
func (h *Handler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathObjectID(r, "groupId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid group id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Groups.Leave(r.Context(), mustObjectID(req.UserID), groupID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You have left this group successfully")
}
