// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"testing"

	"github.com/commune-social/commune/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	token, err := env.svc.Auth.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
		Age:      30,
		Gender:   "female",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("Register returned empty token")
	}

	stored, err := env.users.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Password == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if stored.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", stored.Role, models.RoleUser)
	}
	if stored.ProfilePicture == "" {
		t.Error("default profile picture not applied")
	}

	loginToken, err := env.svc.Auth.Login(ctx, "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginToken == "" {
		t.Fatal("Login returned empty token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw12345678", Age: 30, Gender: "female"}
	if _, err := env.svc.Auth.Register(ctx, in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := env.svc.Auth.Register(ctx, in)
	wantAppErr(t, err, "Email already in use")
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Auth.Register(ctx, RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "pw12345678", Age: 25, Gender: "male",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := env.svc.Auth.Login(ctx, "nobody@example.com", "pw12345678")
	wantAppErr(t, err, "This user does not Exist")

	_, err = env.svc.Auth.Login(ctx, "bob@example.com", "wrong password")
	wantAppErr(t, err, "Invalid credentials")
}
