// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// PageService handles page CRUD and the follower set. The page-side
// follower list and the user-side followedPages list are kept in step
// here.
type PageService struct {
	pages  PageStore
	users  UserStore
	notify *notifier
}

// GetAll lists pages, paginated.
func (s *PageService) GetAll(ctx context.Context, limit, skip int64) ([]models.Page, error) {
	return s.pages.FindAll(ctx, limit, skip)
}

// GetByID fetches one page.
func (s *PageService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	return findPage(ctx, s.pages, id, "Invalid page ID")
}

// CreatePageInput carries the validated creation payload.
type CreatePageInput struct {
	PageName  string
	CreatedBy primitive.ObjectID
	PageCover string
}

// Create stores a new page.
func (s *PageService) Create(ctx context.Context, in CreatePageInput) (*models.Page, error) {
	if _, err := findUser(ctx, s.users, in.CreatedBy, "Invalid user id"); err != nil {
		return nil, err
	}

	page := &models.Page{
		PageName:  in.PageName,
		CreatedBy: in.CreatedBy,
		PageCover: in.PageCover,
	}
	if err := s.pages.Save(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// UpdatePageInput carries the optional fields an update may set.
type UpdatePageInput struct {
	PageName  string
	PageCover string
}

// Update applies the provided fields. Owner only.
func (s *PageService) Update(ctx context.Context, pageID, userID primitive.ObjectID, in UpdatePageInput) (*models.Page, error) {
	page, err := findPage(ctx, s.pages, pageID, "Invalid page id")
	if err != nil {
		return nil, err
	}
	if page.CreatedBy != userID {
		return nil, apperr.BadRequest("Only page owner can delete this page")
	}

	if in.PageName != "" {
		page.PageName = in.PageName
	}
	if in.PageCover != "" {
		page.PageCover = in.PageCover
	}

	if err := s.pages.Save(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete soft-deletes the page. Owner only.
func (s *PageService) Delete(ctx context.Context, pageID, userID primitive.ObjectID) error {
	page, err := findPage(ctx, s.pages, pageID, "Invalid page id")
	if err != nil {
		return err
	}
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return err
	}
	if page.CreatedBy != userID {
		return apperr.BadRequest("Only page owner can delete this page")
	}

	page.IsDeleted = true
	return s.pages.Save(ctx, page)
}

// Follow adds the user to the page's followers and the page to the
// user's followedPages, then notifies the page owner.
func (s *PageService) Follow(ctx context.Context, pageID, userID primitive.ObjectID) (*models.Page, error) {
	page, err := findPage(ctx, s.pages, pageID, "Invalid page id")
	if err != nil {
		return nil, err
	}
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return nil, err
	}

	if page.HasFollower(userID) {
		return nil, apperr.BadRequest("You are already following this page")
	}

	page.Followers = append(page.Followers, userID)
	user.FollowedPages = append(user.FollowedPages, pageID)

	if err := s.pages.Save(ctx, page); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.notify.notify(ctx, page.CreatedBy, userID, NotifyFollowPage, user.Username, page.PageName); err != nil {
		return nil, err
	}
	return page, nil
}

// Unfollow removes the follow edge from both the page and the user.
func (s *PageService) Unfollow(ctx context.Context, pageID, userID primitive.ObjectID) (*models.Page, error) {
	page, err := findPage(ctx, s.pages, pageID, "Invalid page id")
	if err != nil {
		return nil, err
	}
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return nil, err
	}

	if !page.HasFollower(userID) {
		return nil, apperr.BadRequest("You are not a follower of this page")
	}

	page.Followers = models.RemoveID(page.Followers, userID)
	user.FollowedPages = models.RemoveID(user.FollowedPages, pageID)

	if err := s.pages.Save(ctx, page); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return page, nil
}
