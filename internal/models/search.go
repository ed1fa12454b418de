// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by stores when a document does not exist.
var ErrNotFound = errors.New("document not found")

// UserSummary is the projection returned by user search.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	Age            int                `bson:"age" json:"age"`
	Gender         string             `bson:"gender" json:"gender"`
}

// GroupSummary is the projection returned by group search.
type GroupSummary struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	GroupName  string             `bson:"groupName" json:"groupName"`
	GroupCover string             `bson:"groupCover" json:"groupCover"`
}

// PageSummary is the projection returned by page search.
type PageSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	PageName  string             `bson:"pageName" json:"pageName"`
	PageCover string             `bson:"pageCover" json:"pageCover"`
}
