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

// PageStore persists page documents.
type PageStore struct {
	coll *mongo.Collection
}

// FindByID loads a page document whole.
func (s *PageStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	var p models.Page
	err := timed("findOne", pagesCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find page: %w", err)
	}
	return &p, nil
}

// FindAll returns a page of pages.
func (s *PageStore) FindAll(ctx context.Context, limit, skip int64) ([]models.Page, error) {
	var pages []models.Page
	err := timed("find", pagesCollection, func() error {
		cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit).SetSkip(skip))
		if err != nil {
			return err
		}
		return cursor.All(ctx, &pages)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// Save runs the pre-save hook and writes the document whole.
func (s *PageStore) Save(ctx context.Context, p *models.Page) error {
	if err := p.BeforeSave(); err != nil {
		return err
	}
	return timed("save", pagesCollection, func() error {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
			p.CreatedAt = time.Now().UTC()
			_, err := s.coll.InsertOne(ctx, p)
			return err
		}
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
		return err
	})
}

// Search matches page names case-insensitively.
func (s *PageStore) Search(ctx context.Context, term string, limit, skip int64) ([]models.PageSummary, error) {
	var results []models.PageSummary
	err := timed("find", pagesCollection, func() error {
		filter := bson.M{"pageName": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}
		opts := options.Find().
			SetLimit(limit).
			SetSkip(skip).
			SetProjection(bson.M{"pageName": 1, "pageCover": 1})
		cursor, err := s.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &results)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}
	return results, nil
}
