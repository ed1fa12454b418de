// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/models"
)

// UserService handles account CRUD and the notification inbox.
type UserService struct {
	users  UserStore
	hasher *auth.Hasher
}

// GetAll lists accounts, paginated. Password hashes are projected out by
// the store.
func (s *UserService) GetAll(ctx context.Context, limit, skip int64) ([]models.User, error) {
	return s.users.FindAll(ctx, limit, skip)
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest("Invalid user id")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput carries the optional account fields an update may set.
// Empty fields are left unchanged.
type UpdateUserInput struct {
	Username       string
	Email          string
	Password       string
	Gender         string
	Age            int
	ProfilePicture string
}

// Update applies the provided fields to the account. A new password is
// re-hashed before storage.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest("Invalid user id")
		}
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.Age != 0 {
		user.Age = in.Age
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}
	if in.Password != "" {
		hashed, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account document entirely. Deletion is hard; the
// soft-delete flag is reserved for groups, pages, and posts.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return apperr.BadRequest("Invalid user id")
		}
		return err
	}
	return nil
}

// MarkNotificationRead flips the read flag on one inbox entry.
func (s *UserService) MarkNotificationRead(ctx context.Context, userID, notificationID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest("Invalid user id")
		}
		return nil, err
	}

	found := false
	for i := range user.Notifications {
		if user.Notifications[i].ID == notificationID {
			user.Notifications[i].Read = true
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("Invalid notification id")
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveNotification deletes one inbox entry.
func (s *UserService) RemoveNotification(ctx context.Context, userID, notificationID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest("Invalid user id")
		}
		return nil, err
	}

	kept := user.Notifications[:0:0]
	for _, n := range user.Notifications {
		if n.ID != notificationID {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(user.Notifications) {
		return nil, apperr.NotFound("Invalid notification id")
	}
	user.Notifications = kept

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
