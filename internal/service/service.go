// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package service implements the business operations of the social
// network: auth, users, friends, follows, groups, pages, posts, chats,
// reports, and search. Services depend on narrow store interfaces and
// return *apperr.AppError for every expected failure, so the HTTP layer
// can render the response envelope without inspecting error strings.
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/models"
)

// UserStore persists user documents.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, limit, skip int64) ([]models.User, error)
	Save(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, term string, limit, skip int64) ([]models.UserSummary, error)
}

// GroupStore persists group documents.
type GroupStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	FindAll(ctx context.Context, limit, skip int64) ([]models.Group, error)
	Save(ctx context.Context, g *models.Group) error
	Search(ctx context.Context, term string, limit, skip int64) ([]models.GroupSummary, error)
}

// PageStore persists page documents.
type PageStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error)
	FindAll(ctx context.Context, limit, skip int64) ([]models.Page, error)
	Save(ctx context.Context, p *models.Page) error
	Search(ctx context.Context, term string, limit, skip int64) ([]models.PageSummary, error)
}

// PostStore persists post documents.
type PostStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByCreator(ctx context.Context, creator primitive.ObjectID, limit, skip int64) ([]models.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, skip int64) ([]models.Post, error)
	Save(ctx context.Context, p *models.Post) error
}

// ChatStore persists chat documents.
type ChatStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	FindByParticipants(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, error)
	FindForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error)
	Save(ctx context.Context, c *models.Chat) error
}

// Stores bundles the per-entity stores a Services instance operates on.
type Stores struct {
	Users  UserStore
	Groups GroupStore
	Pages  PageStore
	Posts  PostStore
	Chats  ChatStore
}

// Services aggregates every domain service, wired against one set of
// stores. Construct with New at startup and hand to the HTTP layer.
type Services struct {
	Auth    *AuthService
	Users   *UserService
	Friends *FriendService
	Follows *FollowService
	Groups  *GroupService
	Pages   *PageService
	Posts   *PostService
	Chats   *ChatService
	Reports *ReportService
	Search  *SearchService
}

// New wires all services against the given stores and auth helpers.
func New(stores Stores, tokens *auth.JWTManager, hasher *auth.Hasher) *Services {
	notify := &notifier{users: stores.Users}
	return &Services{
		Auth:    &AuthService{users: stores.Users, tokens: tokens, hasher: hasher},
		Users:   &UserService{users: stores.Users, hasher: hasher},
		Friends: &FriendService{users: stores.Users},
		Follows: &FollowService{users: stores.Users},
		Groups:  &GroupService{groups: stores.Groups, users: stores.Users, notify: notify},
		Pages:   &PageService{pages: stores.Pages, users: stores.Users, notify: notify},
		Posts: &PostService{
			posts:  stores.Posts,
			users:  stores.Users,
			groups: stores.Groups,
			pages:  stores.Pages,
			notify: notify,
		},
		Chats:   &ChatService{chats: stores.Chats, users: stores.Users},
		Reports: &ReportService{users: stores.Users, groups: stores.Groups, pages: stores.Pages, posts: stores.Posts},
		Search:  &SearchService{users: stores.Users, groups: stores.Groups, pages: stores.Pages},
	}
}
