// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a community document. CreatedBy is immutable after creation;
// JoinRequests is only allocated for private groups.
type Group struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GroupName    string               `bson:"groupName" json:"groupName"`
	CreatedBy    primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	GroupMembers []primitive.ObjectID `bson:"groupMembers" json:"groupMembers"`
	Posts        []primitive.ObjectID `bson:"posts" json:"posts"`
	Admins       []primitive.ObjectID `bson:"admins" json:"admins"`
	GroupCover   string               `bson:"groupCover" json:"groupCover"`
	IsPrivate    bool                 `bson:"isPrivate" json:"isPrivate"`
	JoinRequests []primitive.ObjectID `bson:"joinRequests,omitempty" json:"joinRequests,omitempty"`
	Reports      []Report             `bson:"reports" json:"reports"`
	Banned       bool                 `bson:"banned" json:"banned"`
	IsDeleted    bool                 `bson:"isDeleted" json:"isDeleted"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// BeforeSave enforces the member cap, applies the ban threshold, and
// allocates the join-request list for private groups.
func (g *Group) BeforeSave() error {
	if len(g.GroupMembers) > MaxGroupMembers {
		return ErrGroupFull
	}
	if g.IsPrivate && g.JoinRequests == nil {
		g.JoinRequests = []primitive.ObjectID{}
	}
	if len(g.Reports) >= BanReportThreshold {
		g.Banned = true
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// IsMember reports whether id is in the member list.
func (g *Group) IsMember(id primitive.ObjectID) bool {
	return containsID(g.GroupMembers, id)
}

// IsAdmin reports whether id is in the admin list.
func (g *Group) IsAdmin(id primitive.ObjectID) bool {
	return containsID(g.Admins, id)
}

// HasJoinRequest reports whether userID has a pending join request.
func (g *Group) HasJoinRequest(userID primitive.ObjectID) bool {
	return containsID(g.JoinRequests, userID)
}
