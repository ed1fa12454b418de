// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commune-social/commune/internal/authz"
	"github.com/commune-social/commune/internal/middleware"
)

// Router assembles the HTTP surface.
type Router struct {
	handler  *Handler
	enforcer *authz.Enforcer
	mw       *ChiMiddleware
}

// NewRouter wires the handler set with its middleware.
func NewRouter(handler *Handler, enforcer *authz.Enforcer, mw *ChiMiddleware) *Router {
	return &Router{handler: handler, enforcer: enforcer, mw: mw}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	h := router.handler
	requireAuth := RequireAuth(h.tokens)

	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())

	r.NotFound(notFoundHandler)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/ws", h.WebSocket)

	// Uploaded files are served back from the local upload directory.
	fileServer := http.StripPrefix(h.cfg.Upload.BaseURL+"/", http.FileServer(http.Dir(h.cfg.Upload.Dir)))
	r.Get(h.cfg.Upload.BaseURL+"/*", fileServer.ServeHTTP)

	// Credential endpoints get the tight rate limit bucket.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.mw.RateLimitAuth())
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/", h.GetAllUsers)
		r.Get("/{userId}", h.GetUserByID)
		r.Post("/", h.Register)
		r.Post("/reports", h.AddReport)
		r.Delete("/reports", h.RemoveReport)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/{userId}", h.UpdateUser)
			r.Delete("/{userId}", h.DeleteUser)
			r.Post("/{senderId}/friend-requests", h.SendFriendRequest)
			r.Patch("/{userId}/friend-requests", h.UpdateFriendRequestStatus)
			r.Post("/{userId}/block-list", h.BlockUser)
			r.Delete("/{userId}/block-list", h.UnblockUser)
			r.Post("/{userId}/followed-users", h.FollowUser)
			r.Delete("/{userId}/followed-users", h.UnfollowUser)
			r.Patch("/{userId}/notifications/{notificationId}", h.MarkNotificationRead)
			r.Delete("/{userId}/notifications/{notificationId}", h.RemoveNotification)
		})
	})

	r.Route("/api/v1/groups", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/reports", h.AddReport)
		r.Delete("/reports", h.RemoveReport)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.GetAllGroups)
			r.With(RequireRole(router.enforcer, "groups", "create")).Post("/", h.CreateGroup)
			r.Get("/{groupId}", h.GetGroupByID)
			r.Patch("/{groupId}", h.UpdateGroup)
			r.Delete("/{groupId}", h.DeleteGroup)
			r.Post("/{groupId}/join", h.JoinGroup)
			r.Post("/{groupId}/join-requests", h.HandleJoinRequest)
			r.Post("/{groupId}/leave", h.LeaveGroup)
		})
	})

	r.Route("/api/v1/pages", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/{pageId}", h.GetPageByID)
		r.Post("/reports", h.AddReport)
		r.Delete("/reports", h.RemoveReport)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.GetAllPages)
			r.Post("/", h.CreatePage)
			r.Patch("/{pageId}", h.UpdatePage)
			r.Delete("/{pageId}", h.DeletePage)
			r.Post("/{pageId}/followers", h.FollowPage)
			r.Delete("/{pageId}/followers", h.UnfollowPage)
		})
	})

	r.Route("/api/v1/posts", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/", h.GetAllPosts)
		r.Get("/{postId}", h.GetPostByID)
		r.Post("/reports", h.AddReport)
		r.Delete("/reports", h.RemoveReport)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.With(RequireRole(router.enforcer, "posts", "create")).Post("/", h.CreatePost)
			r.Patch("/{postId}", h.UpdatePost)
			r.Delete("/{postId}", h.DeletePost)
			r.Post("/{postId}/likes", h.HandleLikePost)
			r.Post("/{postId}/comments", h.AddComment)
			r.Delete("/{postId}/comments/{commentId}", h.DeleteComment)
			r.Post("/{postId}/share", h.SharePost)
		})
	})

	r.Route("/api/v1/chats", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(requireAuth)

		r.Get("/", h.GetAllChats)
		r.Post("/", h.CreateOrGetChat)
		r.Post("/{chatId}", h.SendMessage)
		r.Patch("/{chatId}", h.UpdateOrDeleteMessage)
	})

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Post("/{searchTerm}", h.SearchEntities)
	})

	r.Route("/api/v1/uploads", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(requireAuth)
		r.Post("/", h.Upload)
	})

	return r
}
