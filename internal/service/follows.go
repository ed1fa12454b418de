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

// FollowService maintains the user-to-user follow graph. Page follows
// live on PageService, which also owns the page-side follower list.
type FollowService struct {
	users UserStore
}

// FollowUser records user following target on both sides of the edge.
func (s *FollowService) FollowUser(ctx context.Context, userID, followedUserID primitive.ObjectID) (*models.User, error) {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return nil, err
	}
	followed, err := findUser(ctx, s.users, followedUserID, "Invalid followed user id")
	if err != nil {
		return nil, err
	}

	if user.IsFollowingUser(followedUserID) {
		return nil, apperr.BadRequest("You are already following this user")
	}

	user.FollowedUsers = append(user.FollowedUsers, followedUserID)
	followed.Followers = append(followed.Followers, userID)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, followed); err != nil {
		return nil, err
	}
	return user, nil
}

// UnfollowUser removes the follow edge from both sides.
func (s *FollowService) UnfollowUser(ctx context.Context, userID, followedUserID primitive.ObjectID) error {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}
	followed, err := findUser(ctx, s.users, followedUserID, "Invalid followed user id")
	if err != nil {
		return err
	}

	if !user.IsFollowingUser(followedUserID) {
		return apperr.BadRequest("You can't unfollow this user as you didn't follow him before")
	}

	user.FollowedUsers = models.RemoveID(user.FollowedUsers, followedUserID)
	followed.Followers = models.RemoveID(followed.Followers, userID)

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	return s.users.Save(ctx, followed)
}
