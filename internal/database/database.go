// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package database implements the MongoDB document store. Each entity
// gets a store type over its collection; documents are loaded whole,
// mutated in memory by the service layer, and written back whole. Every
// write path runs the model's BeforeSave hook, so the ban threshold and
// the group caps hold no matter which operation triggered the write.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/metrics"
)

// Collection names.
const (
	usersCollection  = "users"
	groupsCollection = "groups"
	pagesCollection  = "pages"
	postsCollection  = "posts"
	chatsCollection  = "chats"
)

// DB owns the Mongo client and the per-entity stores.
type DB struct {
	client *mongo.Client
	db     *mongo.Database

	Users  *UserStore
	Groups *GroupStore
	Pages  *PageStore
	Posts  *PostStore
	Chats  *ChatStore
}

// Connect establishes the Mongo connection, verifies it with a ping,
// and builds the entity stores.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	d := &DB{client: client, db: db}
	d.Users = &UserStore{coll: db.Collection(usersCollection)}
	d.Groups = &GroupStore{coll: db.Collection(groupsCollection)}
	d.Pages = &PageStore{coll: db.Collection(pagesCollection)}
	d.Posts = &PostStore{coll: db.Collection(postsCollection)}
	d.Chats = &ChatStore{coll: db.Collection(chatsCollection)}

	if err := d.ensureIndexes(ctx); err != nil {
		logging.Warn().Err(err).Msg("failed to ensure indexes")
	}

	logging.Info().Str("database", cfg.Database).Msg("connected to mongodb")
	return d, nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping verifies the connection, used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes creates the unique email index and the name indexes
// backing search.
func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	return nil
}

// timed wraps a store operation with metrics recording.
func timed(operation, collection string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStoreOperation(operation, collection, time.Since(start), err)
	return err
}
