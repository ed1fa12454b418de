// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// Group join outcomes. Public groups admit immediately; private groups
// queue a join request for an admin to resolve.
const (
	JoinStatusJoined    = "joined"
	JoinStatusRequested = "requested"
)

// GroupService handles group CRUD and the membership lifecycle. Deleted
// groups are terminal: no further updates or joins are permitted.
type GroupService struct {
	groups GroupStore
	users  UserStore
	notify *notifier
}

// GetAll lists groups, paginated.
func (s *GroupService) GetAll(ctx context.Context, limit, skip int64) ([]models.Group, error) {
	return s.groups.FindAll(ctx, limit, skip)
}

// GetByID fetches one group.
func (s *GroupService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	return findGroup(ctx, s.groups, id, "Invalid group id")
}

// CreateGroupInput carries the validated creation payload.
type CreateGroupInput struct {
	GroupName  string
	CreatedBy  primitive.ObjectID
	IsPrivate  bool
	GroupCover string
}

// Create stores a new group with the owner as its only member and admin.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	if _, err := findUser(ctx, s.users, in.CreatedBy, "Invalid user id"); err != nil {
		return nil, err
	}

	group := &models.Group{
		GroupName:    in.GroupName,
		CreatedBy:    in.CreatedBy,
		IsPrivate:    in.IsPrivate,
		GroupCover:   in.GroupCover,
		GroupMembers: []primitive.ObjectID{in.CreatedBy},
		Admins:       []primitive.ObjectID{in.CreatedBy},
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroupInput carries the optional fields an update may set.
type UpdateGroupInput struct {
	GroupName  string
	GroupCover string
}

// Update applies the provided fields. Only the owner may update, and a
// deleted group rejects further updates.
func (s *GroupService) Update(ctx context.Context, groupID, userID primitive.ObjectID, in UpdateGroupInput) (*models.Group, error) {
	group, err := findGroup(ctx, s.groups, groupID, "Invalid group id")
	if err != nil {
		return nil, err
	}
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return nil, err
	}

	if group.CreatedBy != userID {
		return nil, apperr.BadRequest("Only group owner can delete this group")
	}
	if group.IsDeleted {
		return nil, apperr.BadRequest("This group is deleted, you can't update it")
	}

	if in.GroupName != "" {
		group.GroupName = in.GroupName
	}
	if in.GroupCover != "" {
		group.GroupCover = in.GroupCover
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete soft-deletes the group. Owner only; terminal.
func (s *GroupService) Delete(ctx context.Context, groupID, userID primitive.ObjectID) error {
	group, err := findGroup(ctx, s.groups, groupID, "Invalid group id")
	if err != nil {
		return err
	}
	if _, err := findUser(ctx, s.users, userID, "Invalid user id"); err != nil {
		return err
	}

	if group.CreatedBy != userID {
		return apperr.BadRequest("Only group owner can delete this group")
	}

	group.IsDeleted = true
	return s.groups.Save(ctx, group)
}

// Join adds the user to a public group immediately, or queues a join
// request on a private one. The returned status is "joined" or
// "requested". Joining a public group notifies the owner.
func (s *GroupService) Join(ctx context.Context, userID, groupID primitive.ObjectID, notifications bool) (string, error) {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return "", err
	}
	group, err := findGroup(ctx, s.groups, groupID, "Invalid group id")
	if err != nil {
		return "", err
	}

	if group.IsDeleted {
		return "", apperr.BadRequest("The group you are trying to join is deleted")
	}
	if group.IsMember(userID) {
		return "", apperr.BadRequest("You are already a member in this group")
	}

	if group.IsPrivate {
		if group.HasJoinRequest(userID) {
			return "", apperr.BadRequest("You already made a join request to this group")
		}
		group.JoinRequests = append(group.JoinRequests, userID)
		if err := s.groups.Save(ctx, group); err != nil {
			return "", err
		}
		return JoinStatusRequested, nil
	}

	user.Groups = append(user.Groups, models.GroupRef{GroupID: groupID, Notifications: notifications})
	group.GroupMembers = append(group.GroupMembers, userID)

	if err := s.groups.Save(ctx, group); err != nil {
		return "", err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	if err := s.notify.notify(ctx, group.CreatedBy, userID, NotifyJoinGroup, user.Username, group.GroupName); err != nil {
		return "", err
	}
	return JoinStatusJoined, nil
}

// HandleJoinRequest resolves a pending join request on a private group.
// Only a listed admin may act; accepting adds the requester to the
// member list, declining just drops the request.
func (s *GroupService) HandleJoinRequest(ctx context.Context, groupID, adminID, requesterID primitive.ObjectID, accepted bool) error {
	group, err := findGroup(ctx, s.groups, groupID, "Invalid group id")
	if err != nil {
		return err
	}
	if _, err := findUser(ctx, s.users, adminID, "Invalid admin id"); err != nil {
		return err
	}
	requester, err := findUser(ctx, s.users, requesterID, "Invalid requesting user id")
	if err != nil {
		return err
	}

	if !group.HasJoinRequest(requesterID) {
		return apperr.BadRequest("Invalid join request")
	}
	if !group.IsAdmin(adminID) {
		return apperr.BadRequest("You are not an admin in this group to accept or decline join requests")
	}

	group.JoinRequests = models.RemoveID(group.JoinRequests, requesterID)
	if accepted {
		group.GroupMembers = append(group.GroupMembers, requester.ID)
	}
	return s.groups.Save(ctx, group)
}

// Leave removes the user from the group and the group from the user's
// membership list, then notifies the owner.
func (s *GroupService) Leave(ctx context.Context, userID, groupID primitive.ObjectID) error {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}
	group, err := findGroup(ctx, s.groups, groupID, "Invalid user id")
	if err != nil {
		return err
	}

	if !group.IsMember(userID) {
		return apperr.BadRequest("You are not a member of this group")
	}

	kept := user.Groups[:0:0]
	for _, g := range user.Groups {
		if g.GroupID != groupID {
			kept = append(kept, g)
		}
	}
	user.Groups = kept
	group.GroupMembers = models.RemoveID(group.GroupMembers, userID)

	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return err
	}
	return s.notify.notify(ctx, group.CreatedBy, userID, NotifyLeaveGroup, user.Username, group.GroupName)
}
