// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"errors"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/models"
)

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens *auth.JWTManager
	hasher *auth.Hasher
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Age      int
	Gender   string
}

// Register creates an account and returns a signed session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return "", apperr.BadRequest("Email already in use")
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Age:      in.Age,
		Gender:   in.Gender,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return s.tokens.GenerateToken(user)
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", apperr.BadRequest("This user does not Exist")
		}
		return "", err
	}
	if !s.hasher.Compare(user.Password, password) {
		return "", apperr.BadRequest("Invalid credentials")
	}
	return s.tokens.GenerateToken(user)
}
