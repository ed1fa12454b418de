// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/commune-social/commune/internal/models"
)

// ChatStore persists chat documents.
type ChatStore struct {
	coll *mongo.Collection
}

// FindByID loads a chat document whole.
func (s *ChatStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var c models.Chat
	err := timed("findOne", chatsCollection, func() error {
		return s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return &c, nil
}

// FindByParticipants returns the conversation between the two users, if
// it exists. Participant order does not matter.
func (s *ChatStore) FindByParticipants(ctx context.Context, a, b primitive.ObjectID) (*models.Chat, error) {
	var c models.Chat
	err := timed("findOne", chatsCollection, func() error {
		filter := bson.M{"participants": bson.M{"$all": []primitive.ObjectID{a, b}}}
		return s.coll.FindOne(ctx, filter).Decode(&c)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chat by participants: %w", err)
	}
	return &c, nil
}

// FindForUser returns every conversation the user participates in.
func (s *ChatStore) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	var chats []models.Chat
	err := timed("find", chatsCollection, func() error {
		filter := bson.M{"participants": bson.M{"$all": []primitive.ObjectID{userID}}}
		cursor, err := s.coll.Find(ctx, filter)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &chats)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// Save runs the pre-save hook and writes the document whole.
func (s *ChatStore) Save(ctx context.Context, c *models.Chat) error {
	if err := c.BeforeSave(); err != nil {
		return err
	}
	return timed("save", chatsCollection, func() error {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
			_, err := s.coll.InsertOne(ctx, c)
			return err
		}
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
		return err
	})
}
