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

// GetAllPosts lists posts for one feed: a user's own posts, a group's,
// or a page's, selected by the closed type enum in the body.
func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	var req getAllPostsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	limit, skip := pagination(r, &h.cfg.API)
	posts, err := h.svc.Posts.GetAll(r.Context(), service.PostSource(req.Type), mustObjectID(req.PostSourceID), limit, skip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"posts": posts})
}

// GetPostByID returns one post.
func (h *Handler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	post, err := h.svc.Posts.GetByID(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"post": post})
}

// CreatePost stores a post scoped to a user feed, group, or page.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	in := service.CreatePostInput{
		Source:      service.PostSource(req.Type),
		PostTitle:   req.PostTitle,
		PostContent: req.PostContent,
		Images:      req.PostImages,
		CreatedBy:   mustObjectID(req.CreatedBy),
	}
	if req.GroupID != "" {
		in.GroupID = mustObjectID(req.GroupID)
	}
	if req.PageID != "" {
		in.PageID = mustObjectID(req.PageID)
	}

	post, err := h.svc.Posts.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"post": post})
}

// UpdatePost applies creator-only changes.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	var req updatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.svc.Posts.Update(r.Context(), mustObjectID(req.UserID), postID, service.UpdatePostInput{
		PostTitle:   req.PostTitle,
		PostContent: req.PostContent,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"updatedPost": post})
}

// DeletePost soft-deletes a post. Creator only, terminal.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Posts.Delete(r.Context(), postID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Post deleted successfully")
}

// HandleLikePost toggles the caller's like on a post.
func (h *Handler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := h.svc.Posts.ToggleLike(r.Context(), postID, mustObjectID(req.UserID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if status == service.LikeStatusLiked {
		writeMessage(w, http.StatusOK, "Post liked successfully")
		return
	}
	writeMessage(w, http.StatusOK, "Post unlinked successfully")
}

// AddComment appends a comment and notifies the post owner.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	var req addCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.svc.Posts.AddComment(r.Context(), postID, mustObjectID(req.CreatedBy), req.Content); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Comment added successfully")
}

// DeleteComment removes a comment from a post.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}
	commentID, err := pathObjectID(r, "commentId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Comment does not exist"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Posts.DeleteComment(r.Context(), postID, mustObjectID(req.UserID), commentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Comment deleted successfully")
}

// SharePost appends a shared feed entry and notifies the post owner.
func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathObjectID(r, "postId")
	if err != nil {
		writeError(w, r, apperr.BadRequest("Invalid post id"))
		return
	}

	var req userIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Posts.Share(r.Context(), postID, mustObjectID(req.UserID)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Post shared successfully")
}
