// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commune-social/commune/internal/models"
)

// UserStore persists user documents.
type UserStore struct {
	coll *mongo.Collection
}

// FindByID loads a user document whole.
func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := timed("findOne", usersCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindByEmail loads a user by email, used by register and login.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := timed("findOne", usersCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

// FindAll returns a page of users with the password field projected out.
func (s *UserStore) FindAll(ctx context.Context, limit, skip int64) ([]models.User, error) {
	var users []models.User
	err := timed("find", usersCollection, func() error {
		opts := options.Find().
			SetLimit(limit).
			SetSkip(skip).
			SetProjection(bson.M{"password": 0})
		cursor, err := s.coll.Find(ctx, bson.M{}, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &users)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Save runs the pre-save hook and writes the document whole, inserting
// when the id is unset.
func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	if err := u.BeforeSave(); err != nil {
		return err
	}
	return timed("save", usersCollection, func() error {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
			u.CreatedAt = time.Now().UTC()
			_, err := s.coll.InsertOne(ctx, u)
			return err
		}
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
		return err
	})
}

// Delete removes the user document permanently.
func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	var deleted int64
	err := timed("delete", usersCollection, func() error {
		res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Search matches usernames case-insensitively and returns the summary
// projection.
func (s *UserStore) Search(ctx context.Context, term string, limit, skip int64) ([]models.UserSummary, error) {
	var results []models.UserSummary
	err := timed("find", usersCollection, func() error {
		filter := bson.M{"username": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}
		opts := options.Find().
			SetLimit(limit).
			SetSkip(skip).
			SetProjection(bson.M{"username": 1, "profilePicture": 1, "age": 1, "gender": 1})
		cursor, err := s.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &results)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return results, nil
}
