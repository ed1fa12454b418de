// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commune-social/commune/internal/config"
	"github.com/commune-social/commune/internal/validation"
)

const validHex = "507f1f77bcf86cd799439011"

func TestRequestDTOValidation(t *testing.T) {
	tests := []struct {
		name    string
		dto     any
		wantErr bool
	}{
		{
			name: "valid register",
			dto: registerRequest{
				Username: "validname", Email: "a@b.com", Password: "Sup3r$ecret",
				Age: 30, Gender: "female",
			},
		},
		{
			name: "register gender outside enum",
			dto: registerRequest{
				Username: "validname", Email: "a@b.com", Password: "Sup3r$ecret",
				Age: 30, Gender: "other",
			},
			wantErr: true,
		},
		{
			name:    "friend request bad object id",
			dto:     sendFriendRequestRequest{RecipientID: "not-hex"},
			wantErr: true,
		},
		{
			name: "join request status outside enum",
			dto: handleJoinRequestRequest{
				AdminID: validHex, RequestingUserID: validHex, Status: "maybe",
			},
			wantErr: true,
		},
		{
			name: "group post requires group id",
			dto: createPostRequest{
				Type: "group", PostContent: "long enough content", CreatedBy: validHex,
			},
			wantErr: true,
		},
		{
			name: "group post with group id",
			dto: createPostRequest{
				Type: "group", PostContent: "long enough content", CreatedBy: validHex,
				GroupID: validHex,
			},
		},
		{
			name: "user post needs no source id",
			dto: createPostRequest{
				Type: "user", PostContent: "long enough content", CreatedBy: validHex,
			},
		},
		{
			name:    "post content below minimum",
			dto:     createPostRequest{Type: "user", PostContent: "short", CreatedBy: validHex},
			wantErr: true,
		},
		{
			name: "message delete without new content",
			dto: updateOrDeleteMessageRequest{
				Type: "delete", SenderID: validHex, MessageID: validHex,
			},
		},
		{
			name: "message update without new content",
			dto: updateOrDeleteMessageRequest{
				Type: "update", SenderID: validHex, MessageID: validHex,
			},
			wantErr: true,
		},
		{
			name:    "search type outside enum",
			dto:     searchRequest{Type: "posts"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateStruct(tt.dto)
			if tt.wantErr {
				require.NotNil(t, err)
				for _, fieldErr := range err.Errors() {
					assert.NotEmpty(t, fieldErr.Error())
				}
			} else {
				require.Nil(t, err)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	cfg := &config.APIConfig{DefaultPageSize: 10, MaxPageSize: 100}

	tests := []struct {
		name      string
		query     url.Values
		wantLimit int64
		wantSkip  int64
	}{
		{name: "defaults", query: url.Values{}, wantLimit: 10, wantSkip: 0},
		{name: "explicit", query: url.Values{"limit": {"20"}, "page": {"3"}}, wantLimit: 20, wantSkip: 40},
		{name: "capped at max", query: url.Values{"limit": {"5000"}}, wantLimit: 100, wantSkip: 0},
		{name: "garbage falls back", query: url.Values{"limit": {"abc"}, "page": {"-1"}}, wantLimit: 10, wantSkip: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query.Encode(), nil)
			limit, skip := pagination(req, cfg)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantSkip, skip)
		})
	}
}

func TestPathObjectID(t *testing.T) {
	env := newAPIEnv(t)

	code, body := env.do(t, http.MethodGet, "/api/v1/posts/not-an-id", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Invalid post id", body["message"])
}
