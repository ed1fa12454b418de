// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package validation

import (
	"strings"
	"testing"
)

type registerFixture struct {
	Username string `validate:"required,min=4,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,password"`
	Gender   string `validate:"required,oneof=male female"`
}

func validRegisterFixture() registerFixture {
	return registerFixture{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "S3cret!pass",
		Gender:   "female",
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	fixture := validRegisterFixture()
	if err := ValidateStruct(&fixture); err != nil {
		t.Errorf("ValidateStruct() unexpected error: %v", err)
	}
}

func TestValidateStruct_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*registerFixture)
		field   string
		wantMsg string
	}{
		{"missing username", func(f *registerFixture) { f.Username = "" }, "Username", "required"},
		{"short username", func(f *registerFixture) { f.Username = "abc" }, "Username", "at least 4 characters"},
		{"long username", func(f *registerFixture) { f.Username = strings.Repeat("a", 21) }, "Username", "at most 20 characters"},
		{"bad email", func(f *registerFixture) { f.Email = "not-an-email" }, "Email", "valid email"},
		{"weak password", func(f *registerFixture) { f.Password = "alllowercase1" }, "Password", "uppercase"},
		{"short password", func(f *registerFixture) { f.Password = "S3c!" }, "Password", "at least 8 characters"},
		{"bad gender", func(f *registerFixture) { f.Gender = "robot" }, "Gender", "one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := validRegisterFixture()
			tt.mutate(&fixture)

			err := ValidateStruct(&fixture)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.field && strings.Contains(fe.Error(), tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s error containing %q, got: %v", tt.field, tt.wantMsg, err)
			}
		})
	}
}

func TestObjectIDRule(t *testing.T) {
	type fixture struct {
		ID string `validate:"required,objectid"`
	}

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"valid lowercase", "507f1f77bcf86cd799439011", true},
		{"valid uppercase", "507F1F77BCF86CD799439011", true},
		{"too short", "507f1f77bcf86cd7994390", false},
		{"too long", "507f1f77bcf86cd79943901122", false},
		{"non-hex", "507f1f77bcf86cd79943901z", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&fixture{ID: tt.id})
			if tt.valid && err != nil {
				t.Errorf("ValidateStruct(%q) unexpected error: %v", tt.id, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateStruct(%q) expected error", tt.id)
			}
		})
	}
}

func TestPasswordRule(t *testing.T) {
	type fixture struct {
		Password string `validate:"password"`
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes", "Aa1!aaaa", true},
		{"missing upper", "aa1!aaaa", false},
		{"missing lower", "AA1!AAAA", false},
		{"missing digit", "Aa!!aaaa", false},
		{"missing special", "Aa1aaaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&fixture{Password: tt.password})
			if tt.valid && err != nil {
				t.Errorf("password %q rejected: %v", tt.password, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("password %q accepted", tt.password)
			}
		})
	}
}

func TestRequestValidationError_CombinedMessage(t *testing.T) {
	fixture := registerFixture{}
	err := ValidateStruct(&fixture)
	if err == nil {
		t.Fatal("expected error for zero-value struct")
	}
	if len(err.Errors()) < 3 {
		t.Errorf("expected multiple field errors, got %d", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("combined message should join with ';', got: %s", err.Error())
	}
}
