// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/validation"
)

// Request DTOs. Field rules mirror the boundary checks the services
// assume: name and content length bounds, closed enums lowered before
// checking, and 24-hex object ids wherever a document is referenced.

type registerRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	Age      int    `json:"age" validate:"required,gt=0"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Username       string `json:"username" validate:"omitempty,min=4,max=20"`
	Email          string `json:"email" validate:"omitempty,email"`
	Password       string `json:"password" validate:"omitempty,min=8,password"`
	Age            int    `json:"age" validate:"omitempty,gt=0"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty"`
}

type sendFriendRequestRequest struct {
	RecipientID string `json:"recipientId" validate:"required,objectid"`
}

type friendRequestStatusRequest struct {
	SenderID  string `json:"senderId" validate:"required,objectid"`
	NewStatus string `json:"newStatus" validate:"required,oneof=accepted declined"`
}

type blockRequest struct {
	UserToBlockID string `json:"userToBlockId" validate:"required,objectid"`
}

type unblockRequest struct {
	BlockedUserID string `json:"blockedUserId" validate:"required,objectid"`
}

type followedUserRequest struct {
	FollowedUserID string `json:"followedUserId" validate:"required,objectid"`
}

// userIDRequest covers the endpoints whose body carries only the acting
// user's id: deletes, page follows, post likes and shares, group leave.
type userIDRequest struct {
	UserID string `json:"userId" validate:"required,objectid"`
}

type createGroupRequest struct {
	GroupName  string `json:"groupName" validate:"required,min=4,max=20"`
	CreatedBy  string `json:"createdBy" validate:"required,objectid"`
	IsPrivate  bool   `json:"isPrivate"`
	GroupCover string `json:"groupCover" validate:"omitempty"`
}

type updateGroupRequest struct {
	UserID     string `json:"userId" validate:"required,objectid"`
	GroupName  string `json:"groupName" validate:"omitempty,min=4,max=20"`
	GroupCover string `json:"groupCover" validate:"omitempty"`
}

type joinGroupRequest struct {
	UserID        string `json:"userId" validate:"required,objectid"`
	Notifications bool   `json:"notifications"`
}

type handleJoinRequestRequest struct {
	AdminID          string `json:"adminId" validate:"required,objectid"`
	RequestingUserID string `json:"requestingUserId" validate:"required,objectid"`
	Status           string `json:"status" validate:"required,oneof=accepted declined"`
}

type createPageRequest struct {
	PageName  string `json:"pageName" validate:"required,min=4,max=20"`
	CreatedBy string `json:"createdBy" validate:"required,objectid"`
	PageCover string `json:"pageCover" validate:"omitempty"`
}

type updatePageRequest struct {
	UserID    string `json:"userId" validate:"required,objectid"`
	PageName  string `json:"pageName" validate:"omitempty,min=4,max=20"`
	PageCover string `json:"pageCover" validate:"omitempty"`
}

type getAllPostsRequest struct {
	Type         string `json:"type" validate:"required,oneof=user group page"`
	PostSourceID string `json:"postSourceId" validate:"required,objectid"`
}

type createPostRequest struct {
	Type        string   `json:"type" validate:"required,oneof=user group page"`
	PostTitle   string   `json:"postTitle" validate:"omitempty,min=4,max=20"`
	PostContent string   `json:"postContent" validate:"required,min=10,max=5000"`
	CreatedBy   string   `json:"createdBy" validate:"required,objectid"`
	GroupID     string   `json:"groupId" validate:"required_if=Type group,omitempty,objectid"`
	PageID      string   `json:"pageId" validate:"required_if=Type page,omitempty,objectid"`
	PostImages  []string `json:"postImages" validate:"omitempty,dive,max=2048"`
}

type updatePostRequest struct {
	UserID      string `json:"userId" validate:"required,objectid"`
	PostTitle   string `json:"postTitle" validate:"omitempty,min=4,max=20"`
	PostContent string `json:"postContent" validate:"omitempty,min=10,max=5000"`
}

type addCommentRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=5000"`
	CreatedBy string `json:"createdBy" validate:"required,objectid"`
}

type addReportRequest struct {
	Type           string `json:"type" validate:"required,oneof=user group page post"`
	ReportedItemID string `json:"reportedItemId" validate:"required,objectid"`
	ReportedBy     string `json:"reportedBy" validate:"required,objectid"`
	Reason         string `json:"reason" validate:"required,min=4,max=5000"`
}

type removeReportRequest struct {
	Type           string `json:"type" validate:"required,oneof=user group page post"`
	ReportedItemID string `json:"reportedItemId" validate:"required,objectid"`
	UserID         string `json:"userId" validate:"required,objectid"`
}

type createChatRequest struct {
	FirstUserID  string `json:"firstUserId" validate:"required,objectid"`
	SecondUserID string `json:"secondUserId" validate:"required,objectid"`
}

type sendMessageRequest struct {
	SenderID string `json:"senderId" validate:"required,objectid"`
	Content  string `json:"content" validate:"required,max=5000"`
}

type updateOrDeleteMessageRequest struct {
	Type       string `json:"type" validate:"required,oneof=update delete"`
	SenderID   string `json:"senderId" validate:"required,objectid"`
	MessageID  string `json:"messageId" validate:"required,objectid"`
	NewContent string `json:"newContent" validate:"required_if=Type update,omitempty,max=5000"`
}

type searchRequest struct {
	Type string `json:"type" validate:"required,oneof=users groups pages"`
}

// decodeAndValidate parses the JSON body into dst and applies the DTO's
// validation tags. On failure it writes the error response and returns
// false; the handler just returns.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeValidationMessages(w, []string{fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		messages := make([]string, 0, len(verr.Errors()))
		for _, fieldErr := range verr.Errors() {
			messages = append(messages, fieldErr.Error())
		}
		writeValidationMessages(w, messages)
		return false
	}
	return true
}

// pathObjectID parses a chi URL parameter as a Mongo object id.
func pathObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// pagination reads limit and page query parameters with the configured
// defaults and cap, returning the limit and skip to hand to a store.
func pagination(r *http.Request, cfg *config.APIConfig) (limit, skip int64) {
	limit = int64(cfg.DefaultPageSize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > int64(cfg.MaxPageSize) {
		limit = int64(cfg.MaxPageSize)
	}

	page := int64(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			page = v
		}
	}
	return limit, (page - 1) * limit
}

// mustObjectID converts a DTO field that already passed the objectid
// validation rule. Invalid input cannot reach this point.
func mustObjectID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}
