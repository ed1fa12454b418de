// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package models defines the persisted document types for the social graph:
// users, groups, pages, posts, and chats. Documents are read and written
// whole; the BeforeSave hooks mirror the storage-level rules (ban threshold,
// membership caps, join-request allocation) and run on every store write.
package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage-level limits and thresholds.
const (
	// MaxFriends bounds a user's friend list.
	MaxFriends = 500
	// MaxGroupMembers bounds a group's member list.
	MaxGroupMembers = 5000
	// BanReportThreshold is the report count at which an entity is banned.
	BanReportThreshold = 10
)

// DefaultProfilePicture is used when a user registers without an avatar.
const DefaultProfilePicture = "https://res.cloudinary.com/demo/image/upload/default_avatar.png"

// ErrGroupFull is returned by Group.BeforeSave when the member cap is exceeded.
var ErrGroupFull = errors.New("group member limit exceeded")

// ErrFriendListFull is returned by User.BeforeSave when the friend cap is exceeded.
var ErrFriendListFull = errors.New("friend list limit exceeded")

// Role is the closed set of account roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// PostRef is a user's link to a post, authored or shared.
type PostRef struct {
	PostID   primitive.ObjectID `bson:"postId" json:"postId"`
	IsShared bool               `bson:"isShared" json:"isShared"`
}

// GroupRef is a user's membership entry with its notification preference.
type GroupRef struct {
	GroupID       primitive.ObjectID `bson:"groupId" json:"groupId"`
	Notifications bool               `bson:"notifications" json:"notifications"`
}

// FriendRequest is an incoming request stored on the recipient.
type FriendRequest struct {
	Sender primitive.ObjectID  `bson:"sender" json:"sender"`
	Status FriendRequestStatus `bson:"status" json:"status"`
}

// SentFriendRequest is the sender-side mirror of a FriendRequest.
type SentFriendRequest struct {
	SentTo primitive.ObjectID  `bson:"sentTo" json:"sentTo"`
	Status FriendRequestStatus `bson:"status" json:"status"`
}

// Notification is an embedded inbox entry on the user document.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MadeReport records a report this user filed against some entity.
type MadeReport struct {
	ReportedItemID primitive.ObjectID `bson:"reportedItemId" json:"reportedItemId"`
	Reason         string             `bson:"reason" json:"reason"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// Report is a report filed against the entity it is embedded in.
type Report struct {
	Reason     string             `bson:"reason" json:"reason"`
	ReportedBy primitive.ObjectID `bson:"reportedBy" json:"reportedBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// User is the account document. It embeds the user's side of every
// relationship: friends, follows, blocks, group memberships, chats,
// notifications, and reports filed by and against the account.
type User struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username           string               `bson:"username" json:"username"`
	Age                int                  `bson:"age" json:"age"`
	Email              string               `bson:"email" json:"email"`
	Password           string               `bson:"password" json:"-"`
	Gender             string               `bson:"gender" json:"gender"`
	ProfilePicture     string               `bson:"profilePicture" json:"profilePicture"`
	Posts              []PostRef            `bson:"posts" json:"posts"`
	Groups             []GroupRef           `bson:"groups" json:"groups"`
	FriendList         []primitive.ObjectID `bson:"friendList" json:"friendList"`
	FriendRequests     []FriendRequest      `bson:"friendRequests" json:"friendRequests"`
	SentFriendRequests []SentFriendRequest  `bson:"sentFriendRequests" json:"sentFriendRequests"`
	BlockList          []primitive.ObjectID `bson:"blockList" json:"blockList"`
	FollowedUsers      []primitive.ObjectID `bson:"followedUsers" json:"followedUsers"`
	FollowedPages      []primitive.ObjectID `bson:"followedPages" json:"followedPages"`
	Followers          []primitive.ObjectID `bson:"followers" json:"followers"`
	Chats              []primitive.ObjectID `bson:"chats" json:"chats"`
	Notifications      []Notification       `bson:"notifications" json:"notifications"`
	MadeReports        []MadeReport         `bson:"madeReports" json:"madeReports"`
	Reports            []Report             `bson:"reports" json:"reports"`
	Banned             bool                 `bson:"banned" json:"banned"`
	Role               Role                 `bson:"role" json:"role"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// BeforeSave applies the storage-level rules that run on every write:
// the ban threshold and the default avatar.
func (u *User) BeforeSave() error {
	if len(u.FriendList) > MaxFriends {
		return ErrFriendListFull
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
	if len(u.Reports) >= BanReportThreshold {
		u.Banned = true
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// HasFriend reports whether id is in the friend list.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	return containsID(u.FriendList, id)
}

// HasBlocked reports whether id is in the block list.
func (u *User) HasBlocked(id primitive.ObjectID) bool {
	return containsID(u.BlockList, id)
}

// IsFollowingUser reports whether id is in followedUsers.
func (u *User) IsFollowingUser(id primitive.ObjectID) bool {
	return containsID(u.FollowedUsers, id)
}

// IsFollowingPage reports whether id is in followedPages.
func (u *User) IsFollowingPage(id primitive.ObjectID) bool {
	return containsID(u.FollowedPages, id)
}

// FriendRequestFrom returns the incoming request sent by senderID, if any.
func (u *User) FriendRequestFrom(senderID primitive.ObjectID) (FriendRequest, bool) {
	for _, fr := range u.FriendRequests {
		if fr.Sender == senderID {
			return fr, true
		}
	}
	return FriendRequest{}, false
}

// SentFriendRequestTo returns the outgoing request addressed to id, if any.
func (u *User) SentFriendRequestTo(id primitive.ObjectID) (SentFriendRequest, bool) {
	for _, sr := range u.SentFriendRequests {
		if sr.SentTo == id {
			return sr, true
		}
	}
	return SentFriendRequest{}, false
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemoveID returns ids without id, preserving order.
func RemoveID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ContainsID reports whether id is present in ids.
func ContainsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	return containsID(ids, id)
}
