// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page is a public presence document followed by users.
type Page struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PageName  string               `bson:"pageName" json:"pageName"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Followers []primitive.ObjectID `bson:"followers" json:"followers"`
	Posts     []primitive.ObjectID `bson:"posts" json:"posts"`
	PageCover string               `bson:"pageCover" json:"pageCover"`
	Reports   []Report             `bson:"reports" json:"reports"`
	Banned    bool                 `bson:"banned" json:"banned"`
	IsDeleted bool                 `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// BeforeSave applies the ban threshold.
func (p *Page) BeforeSave() error {
	if len(p.Reports) >= BanReportThreshold {
		p.Banned = true
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// HasFollower reports whether id follows the page.
func (p *Page) HasFollower(id primitive.ObjectID) bool {
	return containsID(p.Followers, id)
}
