// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commune-social/commune/internal/models"
)

// PostStore persists post documents.
type PostStore struct {
	coll *mongo.Collection
}

// FindByID loads a post document whole.
func (s *PostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := timed("findOne", postsCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &p, nil
}

// FindByCreator returns a page of posts authored by the user.
func (s *PostStore) FindByCreator(ctx context.Context, creator primitive.ObjectID, limit, skip int64) ([]models.Post, error) {
	var posts []models.Post
	err := timed("find", postsCollection, func() error {
		cursor, err := s.coll.Find(ctx, bson.M{"createdBy": creator},
			options.Find().SetLimit(limit).SetSkip(skip))
		if err != nil {
			return err
		}
		return cursor.All(ctx, &posts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by creator: %w", err)
	}
	return posts, nil
}

// FindByIDs returns a page of the posts whose ids are listed, used for
// group and page feeds.
func (s *PostStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, skip int64) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	err := timed("find", postsCollection, func() error {
		cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetLimit(limit).SetSkip(skip))
		if err != nil {
			return err
		}
		return cursor.All(ctx, &posts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by ids: %w", err)
	}
	return posts, nil
}

// Save runs the pre-save hook and writes the document whole.
func (s *PostStore) Save(ctx context.Context, p *models.Post) error {
	if err := p.BeforeSave(); err != nil {
		return err
	}
	return timed("save", postsCollection, func() error {
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
