// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/models"
)

func testManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.AuthConfig{
		JWTSecret: strings.Repeat("s", 32),
		TokenTTL:  ttl,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleUser,
	}
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager(&config.AuthConfig{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager(t, time.Hour)
	user := testUser()

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ID != user.ID.Hex() {
		t.Errorf("claims.ID = %q, want %q", claims.ID, user.ID.Hex())
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %q, want alice", claims.Username)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("claims.Email = %q, want alice@example.com", claims.Email)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("claims.Role = %q, want user", claims.Role)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := testManager(t, -time.Minute)

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := testManager(t, time.Hour)
	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other, _ := NewJWTManager(&config.AuthConfig{
		JWTSecret: strings.Repeat("t", 32),
		TokenTTL:  time.Hour,
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestValidateToken_WrongAlgorithm(t *testing.T) {
	m := testManager(t, time.Hour)

	// A token signed with "none" must be rejected.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "mallory"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	if _, err := m.ValidateToken(tokenString); err == nil {
		t.Error("expected error for none-algorithm token")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	m := testManager(t, time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ValidateToken(tok); err == nil {
			t.Errorf("ValidateToken(%q) expected error", tok)
		}
	}
}

func TestPrincipalFromClaims(t *testing.T) {
	user := testUser()
	claims := &Claims{ID: user.ID.Hex(), Username: user.Username, Email: user.Email, Role: user.Role}

	p, err := PrincipalFromClaims(claims)
	if err != nil {
		t.Fatalf("PrincipalFromClaims() error = %v", err)
	}
	if p.ID != user.ID {
		t.Errorf("Principal.ID = %v, want %v", p.ID, user.ID)
	}

	if _, err := PrincipalFromClaims(&Claims{ID: "bogus"}); err == nil {
		t.Error("expected error for invalid id claim")
	}
}

func TestHasher(t *testing.T) {
	h := NewHasher(bcryptTestCost)

	hashed, err := h.Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hashed == "S3cret!pass" {
		t.Fatal("hash equals plaintext")
	}
	if !h.Compare(hashed, "S3cret!pass") {
		t.Error("Compare() rejected correct password")
	}
	if h.Compare(hashed, "wrong-pass") {
		t.Error("Compare() accepted wrong password")
	}
}

// Low cost keeps the bcrypt tests fast.
const bcryptTestCost = 4
