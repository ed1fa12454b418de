// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetUserByIDMissing(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Users.GetByID(context.Background(), primitive.NewObjectID())
	wantAppErr(t, err, "Invalid user id")
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice")

	before := env.mustUser(t, alice)
	updated, err := env.svc.Users.Update(ctx, alice, UpdateUserInput{
		Username: "alice2",
		Password: "new password 123",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Username != "alice2" {
		t.Errorf("username = %q", updated.Username)
	}
	if updated.Password == "new password 123" || updated.Password == before.Password {
		t.Error("password not re-hashed")
	}
	// Untouched fields survive.
	if updated.Email != before.Email || updated.Age != before.Age {
		t.Error("update clobbered untouched fields")
	}
}

func TestDeleteUserHard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice")

	if err := env.svc.Users.Delete(ctx, alice); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := env.svc.Users.Delete(ctx, alice)
	wantAppErr(t, err, "Invalid user id")
}

func TestNotificationInbox(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	post, err := env.svc.Posts.Create(ctx, CreatePostInput{
		Source: PostSourceUser, PostContent: "notify me please", CreatedBy: alice,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := env.svc.Posts.ToggleLike(ctx, post.ID, bob); err != nil {
		t.Fatalf("like: %v", err)
	}

	aliceDoc := env.mustUser(t, alice)
	if len(aliceDoc.Notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(aliceDoc.Notifications))
	}
	note := aliceDoc.Notifications[0]
	if note.Read {
		t.Error("new notification marked read")
	}

	_, err = env.svc.Users.MarkNotificationRead(ctx, alice, primitive.NewObjectID())
	wantAppErr(t, err, "Invalid notification id")

	updated, err := env.svc.Users.MarkNotificationRead(ctx, alice, note.ID)
	if err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	if !updated.Notifications[0].Read {
		t.Error("notification not marked read")
	}

	if _, err := env.svc.Users.RemoveNotification(ctx, alice, note.ID); err != nil {
		t.Fatalf("RemoveNotification: %v", err)
	}
	if len(env.mustUser(t, alice).Notifications) != 0 {
		t.Error("notification not removed")
	}

	_, err = env.svc.Users.RemoveNotification(ctx, alice, note.ID)
	wantAppErr(t, err, "Invalid notification id")
}
