// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an embedded chat message.
type Message struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Content   string             `bson:"content" json:"content"`
	Seen      bool               `bson:"seen" json:"seen"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Chat is a two-participant conversation with its full message history
// embedded in the document.
type Chat struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Messages     []Message            `bson:"messages" json:"messages"`
	LastUpdated  time.Time            `bson:"lastUpdated" json:"lastUpdated"`
}

// BeforeSave stamps the last-activity time.
func (c *Chat) BeforeSave() error {
	c.LastUpdated = time.Now().UTC()
	return nil
}

// HasParticipant reports whether id belongs to the conversation.
func (c *Chat) HasParticipant(id primitive.ObjectID) bool {
	return containsID(c.Participants, id)
}

// MessageByID returns the embedded message with the given id, if any.
func (c *Chat) MessageByID(id primitive.ObjectID) (Message, bool) {
	for _, m := range c.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}
