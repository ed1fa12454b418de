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

// GroupStore persists group documents.
type GroupStore struct {
	coll *mongo.Collection
}

// FindByID loads a group document whole.
func (s *GroupStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	err := timed("findOne", groupsCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return &g, nil
}

// FindAll returns a page of groups.
func (s *GroupStore) FindAll(ctx context.Context, limit, skip int64) ([]models.Group, error) {
	var groups []models.Group
	err := timed("find", groupsCollection, func() error {
		cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit).SetSkip(skip))
		if err != nil {
			return err
		}
		return cursor.All(ctx, &groups)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// Save runs the pre-save hook (member cap, ban threshold, join-request
// allocation) and writes the document whole.
func (s *GroupStore) Save(ctx context.Context, g *models.Group) error {
	if err := g.BeforeSave(); err != nil {
		return err
	}
	return timed("save", groupsCollection, func() error {
		if g.ID.IsZero() {
			g.ID = primitive.NewObjectID()
			g.CreatedAt = time.Now().UTC()
			_, err := s.coll.InsertOne(ctx, g)
			return err
		}
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
		return err
	})
}

// Search matches group names case-insensitively.
func (s *GroupStore) Search(ctx context.Context, term string, limit, skip int64) ([]models.GroupSummary, error) {
	var results []models.GroupSummary
	err := timed("find", groupsCollection, func() error {
		filter := bson.M{"groupName": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}
		opts := options.Find().
			SetLimit(limit).
			SetSkip(skip).
			SetProjection(bson.M{"groupName": 1, "groupCover": 1})
		cursor, err := s.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &results)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search groups: %w", err)
	}
	return results, nil
}
