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

// FriendService maintains the friend-request graph and block lists.
// Every operation is a read-modify-write across two user documents with
// no cross-document transaction; a conflicting concurrent request can
// leave the mirrored state inconsistent.
type FriendService struct {
	users UserStore
}

// SendRequest files a friend request from sender to recipient. Both
// sides record the pending entry: the sender in sentFriendRequests, the
// recipient in friendRequests.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) error {
	sender, err := findUser(ctx, s.users, senderID, "Invalid user id")
	if err != nil {
		return err
	}
	recipient, err := findUser(ctx, s.users, recipientID, "Invalid friend request recipient id")
	if err != nil {
		return err
	}

	// A reciprocal pending request means the recipient got there first.
	if _, ok := sender.FriendRequestFrom(recipientID); ok {
		return apperr.BadRequest("The use you are trying to send a friend request to already sent you a friend request, check your friend requests box")
	}

	if recipient.HasBlocked(senderID) {
		return apperr.BadRequestFail("You can't send a friend request to this user")
	}
	if sender.HasBlocked(recipientID) {
		return apperr.BadRequestFail("You have to unblock this user first to send him a friend request")
	}

	if len(sender.FriendList)+len(sender.FriendRequests) >= models.MaxFriends {
		return apperr.BadRequest("You can't send a friend request to this user as your friend list is full")
	}
	if len(recipient.FriendList)+len(recipient.FriendRequests) >= models.MaxFriends {
		return apperr.BadRequest("The user you are trying to send a friend request to has a full friend list")
	}

	if existing, ok := recipient.FriendRequestFrom(senderID); ok {
		if existing.Status == models.FriendRequestAccepted {
			return apperr.BadRequest("You are already a friend to this user")
		}
		return apperr.BadRequest("You already sent a friend request to this user")
	}

	sender.SentFriendRequests = append(sender.SentFriendRequests, models.SentFriendRequest{
		SentTo: recipientID,
		Status: models.FriendRequestPending,
	})
	recipient.FriendRequests = append(recipient.FriendRequests, models.FriendRequest{
		Sender: senderID,
		Status: models.FriendRequestPending,
	})

	if err := s.users.Save(ctx, sender); err != nil {
		return err
	}
	return s.users.Save(ctx, recipient)
}

// RespondRequest resolves a pending request. Accepting links both friend
// lists; declining only flips the stored statuses. A resolved request is
// terminal and cannot be resolved again.
func (s *FriendService) RespondRequest(ctx context.Context, recipientID, senderID primitive.ObjectID, status models.FriendRequestStatus) error {
	recipient, err := findUser(ctx, s.users, recipientID, "Invalid friend request recipient id")
	if err != nil {
		return err
	}
	sender, err := findUser(ctx, s.users, senderID, "Invalid friend request sender id")
	if err != nil {
		return err
	}

	requestIdx := -1
	for i := range recipient.FriendRequests {
		if recipient.FriendRequests[i].Sender == senderID {
			requestIdx = i
			break
		}
	}
	sentIdx := -1
	for i := range sender.SentFriendRequests {
		if sender.SentFriendRequests[i].SentTo == recipientID {
			sentIdx = i
			break
		}
	}
	if requestIdx == -1 || sentIdx == -1 {
		return apperr.BadRequest("Invalid friend request")
	}

	switch sender.SentFriendRequests[sentIdx].Status {
	case models.FriendRequestAccepted:
		return apperr.BadRequest("This request is already accepted")
	case models.FriendRequestDeclined:
		return apperr.BadRequest("This request is already declined")
	}

	if status == models.FriendRequestAccepted {
		recipient.FriendRequests[requestIdx].Status = models.FriendRequestAccepted
		sender.SentFriendRequests[sentIdx].Status = models.FriendRequestAccepted
		recipient.FriendList = append(recipient.FriendList, senderID)
		sender.FriendList = append(sender.FriendList, recipientID)
	} else {
		recipient.FriendRequests[requestIdx].Status = models.FriendRequestDeclined
		sender.SentFriendRequests[sentIdx].Status = models.FriendRequestDeclined
	}

	if err := s.users.Save(ctx, recipient); err != nil {
		return err
	}
	return s.users.Save(ctx, sender)
}

// Block adds target to the caller's block list. If the pair were
// friends, both friend-list entries are removed and any request state
// between them is purged from whichever direction filed it, so an
// unblock allows a fresh request later.
func (s *FriendService) Block(ctx context.Context, userID, blockedUserID primitive.ObjectID) error {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}
	blocked, err := findUser(ctx, s.users, blockedUserID, "Invalid user id to be blocked")
	if err != nil {
		return err
	}

	user.BlockList = append(user.BlockList, blockedUserID)

	if user.HasFriend(blockedUserID) {
		user.FriendList = models.RemoveID(user.FriendList, blockedUserID)
		blocked.FriendList = models.RemoveID(blocked.FriendList, userID)

		if _, ok := blocked.SentFriendRequestTo(userID); ok {
			blocked.SentFriendRequests = removeSentRequest(blocked.SentFriendRequests, userID)
			user.FriendRequests = removeRequest(user.FriendRequests, blockedUserID)
		} else {
			blocked.FriendRequests = removeRequest(blocked.FriendRequests, userID)
			user.SentFriendRequests = removeSentRequest(user.SentFriendRequests, blockedUserID)
		}

		if err := s.users.Save(ctx, blocked); err != nil {
			return err
		}
	}

	return s.users.Save(ctx, user)
}

// Unblock removes target from the caller's block list.
func (s *FriendService) Unblock(ctx context.Context, userID, blockedUserID primitive.ObjectID) error {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}
	if !user.HasBlocked(blockedUserID) {
		return apperr.BadRequest("This user is not in your block list")
	}
	user.BlockList = models.RemoveID(user.BlockList, blockedUserID)
	return s.users.Save(ctx, user)
}

func removeRequest(requests []models.FriendRequest, sender primitive.ObjectID) []models.FriendRequest {
	out := requests[:0:0]
	for _, r := range requests {
		if r.Sender != sender {
			out = append(out, r)
		}
	}
	return out
}

func removeSentRequest(requests []models.SentFriendRequest, sentTo primitive.ObjectID) []models.SentFriendRequest {
	out := requests[:0:0]
	for _, r := range requests {
		if r.SentTo != sentTo {
			out = append(out, r)
		}
	}
	return out
}
