// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is an embedded comment on a post.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is an authored post. CreatedBy is immutable after creation; likes,
// comments, and shares are embedded and mutated whole-document.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostTitle   string               `bson:"postTitle,omitempty" json:"postTitle,omitempty"`
	PostContent string               `bson:"postContent" json:"postContent"`
	Images      []string             `bson:"images" json:"images"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	Shares      []primitive.ObjectID `bson:"shares" json:"shares"`
	Reports     []Report             `bson:"reports" json:"reports"`
	IsDeleted   bool                 `bson:"isDeleted" json:"isDeleted"`
	Banned      bool                 `bson:"banned" json:"banned"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// BeforeSave applies the ban threshold.
func (p *Post) BeforeSave() error {
	if len(p.Reports) >= BanReportThreshold {
		p.Banned = true
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// LikedBy reports whether id already likes the post.
func (p *Post) LikedBy(id primitive.ObjectID) bool {
	return containsID(p.Likes, id)
}

// CommentByID returns the embedded comment with the given id, if any.
func (p *Post) CommentByID(id primitive.ObjectID) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}
