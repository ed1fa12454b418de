// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// NotificationKind is the closed set of automatic notification triggers.
type NotificationKind string

const (
	NotifyLikePost    NotificationKind = "likePost"
	NotifyCommentPost NotificationKind = "commentPost"
	NotifySharePost   NotificationKind = "sharePost"
	NotifyFollowPage  NotificationKind = "followPage"
	NotifyJoinGroup   NotificationKind = "joinGroup"
	NotifyLeaveGroup  NotificationKind = "leaveGroup"
)

// notificationMessage renders the inbox text for a kind. The username is
// the acting user; content carries the comment text, page name, or group
// name where the kind needs one.
func notificationMessage(kind NotificationKind, username, content string) string {
	switch kind {
	case NotifyLikePost:
		return fmt.Sprintf("%s liked your post!", username)
	case NotifyCommentPost:
		return fmt.Sprintf("%s commented your post: %s", username, content)
	case NotifySharePost:
		return fmt.Sprintf("%s shared your post!", username)
	case NotifyFollowPage:
		return fmt.Sprintf("%s is now following your page: %s", username, content)
	case NotifyJoinGroup:
		return fmt.Sprintf("%s joined your group: %s", username, content)
	case NotifyLeaveGroup:
		return fmt.Sprintf("%s left your group: %s", username, content)
	}
	return ""
}

// notifier appends inbox entries to the recipient's user document.
type notifier struct {
	users UserStore
}

// notify records a notification on the recipient. Actors never notify
// themselves; liking your own post is silent.
func (n *notifier) notify(ctx context.Context, recipientID, actorID primitive.ObjectID, kind NotificationKind, username, content string) error {
	if recipientID == actorID {
		return nil
	}
	recipient, err := n.users.FindByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return apperr.BadRequest("An error occurred during liking the post, pleases try again later")
		}
		return err
	}
	recipient.Notifications = append(recipient.Notifications, models.Notification{
		ID:        primitive.NewObjectID(),
		Message:   notificationMessage(kind, username, content),
		CreatedAt: time.Now().UTC(),
	})
	return n.users.Save(ctx, recipient)
}
