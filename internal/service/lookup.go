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
	"github.com/commune-social/commune/internal/models"
)

// The find helpers translate a missing document into the operation's
// client-facing message, matching the per-call wording of the API.

func findUser(ctx context.Context, store UserStore, id primitive.ObjectID, msg string) (*models.User, error) {
	u, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest(msg)
		}
		return nil, err
	}
	return u, nil
}

func findGroup(ctx context.Context, store GroupStore, id primitive.ObjectID, msg string) (*models.Group, error) {
	g, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest(msg)
		}
		return nil, err
	}
	return g, nil
}

func findPage(ctx context.Context, store PageStore, id primitive.ObjectID, msg string) (*models.Page, error) {
	p, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest(msg)
		}
		return nil, err
	}
	return p, nil
}

func findPost(ctx context.Context, store PostStore, id primitive.ObjectID, msg string) (*models.Post, error) {
	p, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest(msg)
		}
		return nil, err
	}
	return p, nil
}

func findChat(ctx context.Context, store ChatStore, id primitive.ObjectID, msg string) (*models.Chat, error) {
	c, err := store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, apperr.BadRequest(msg)
		}
		return nil, err
	}
	return c, nil
}
