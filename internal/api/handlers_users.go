// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
	"github.com/commune-social/commune/internal/service"
)

// GetAllUsers lists accounts. The envelope carries a top-level length
// alongside the data, which only this endpoint does.
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	limit, skip := pagination(r, &h.cfg.API)
	users, err := h.svc.Users.GetAll(r.Context(), limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeListData(w, http.StatusOK, len(users), map[string]any{"users": users})
}

// GetUserByID returns one account.
func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	user, err := h.svc.Users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateUser applies a partial account update.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req updateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.svc.Users.Update(r.Context(), userID, service.UpdateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Gender:         req.Gender,
		Age:            req.Age,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}

// DeleteUser removes an account permanently.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	if err := h.svc.Users.Delete(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

// SendFriendRequest delivers a pending friend request.
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	senderID, err := pathObjectID(r, "senderId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req sendFriendRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Friends.SendRequest(r.Context(), senderID, mustObjectID(req.RecipientID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Friend request sent successfully")
}

// UpdateFriendRequestStatus accepts or declines a pending request.
func (h *Handler) UpdateFriendRequestStatus(w http.ResponseWriter, r *http.Request) {
	recipientID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req friendRequestStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status := models.FriendRequestStatus(req.NewStatus)
	if err := h.svc.Friends.RespondRequest(r.Context(), recipientID, mustObjectID(req.SenderID), status); err != nil {
		writeError(w, r, err)
		return
	}

	if status == models.FriendRequestAccepted {
		writeMessage(w, http.StatusOK, "Friend request accepted")
		return
	}
	writeMessage(w, http.StatusOK, "Friend request declined")
}

// BlockUser adds a user to the caller's block list.
func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req blockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Friends.Block(r.Context(), userID, mustObjectID(req.UserToBlockID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You have successfully blocked this user")
}

// UnblockUser removes a user from the caller's block list.
func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req unblockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Friends.Unblock(r.Context(), userID, mustObjectID(req.BlockedUserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You have successfully unblocked this user")
}

// FollowUser adds the target to the caller's followed users.
func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req followedUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.svc.Follows.FollowUser(r.Context(), userID, mustObjectID(req.FollowedUserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You are now following this user")
}

// UnfollowUser removes the target from the caller's followed users.
func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}

	var req followedUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Follows.UnfollowUser(r.Context(), userID, mustObjectID(req.FollowedUserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "You are not following this user anymore")
}

// MarkNotificationRead flips one inbox entry to read.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}
	notificationID, err := pathObjectID(r, "notificationId")
	if err != nil {
		writeError(w, r, apperr.NotFound("Invalid notification id"))
		return
	}

	user, err := h.svc.Users.MarkNotificationRead(r.Context(), userID, notificationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}

// RemoveNotification deletes one inbox entry.
func (h *Handler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := pathObjectID(r, "userId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid user id"))
		return
	}
	notificationID, err := pathObjectID(r, "notificationId")
	if err != nil {
		writeError(w, r, apperr.NotFound("Invalid notification id"))
		return
	}

	user, err := h.svc.Users.RemoveNotification(r.Context(), userID, notificationID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": user})
}
