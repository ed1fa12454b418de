// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/models"
)

// Principal is the authenticated caller extracted from a valid token.
type Principal struct {
	ID       primitive.ObjectID
	Username string
	Email    string
	Role     models.Role
}

type principalKey struct{}

// ContextWithPrincipal stores the authenticated caller in the context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// PrincipalFromClaims converts validated token claims into a Principal.
// It fails if the id claim is not a valid ObjectID hex string.
func PrincipalFromClaims(claims *Claims) (*Principal, error) {
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:       id,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}
