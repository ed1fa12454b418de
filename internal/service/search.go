// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"

	"github.com/commune-social/commune/internal/apperr"
)

// SearchKind is the closed set of searchable entities.
type SearchKind string

const (
	SearchUsers  SearchKind = "users"
	SearchGroups SearchKind = "groups"
	SearchPages  SearchKind = "pages"
)

// SearchService runs case-insensitive substring search over one name
// field per entity kind, returning reduced projections.
type SearchService struct {
	users  UserStore
	groups GroupStore
	pages  PageStore
}

// Search dispatches on kind and returns the matching summaries.
func (s *SearchService) Search(ctx context.Context, kind SearchKind, term string, limit, skip int64) (any, error) {
	switch kind {
	case SearchUsers:
		return s.users.Search(ctx, term, limit, skip)
	case SearchGroups:
		return s.groups.Search(ctx, term, limit, skip)
	case SearchPages:
		return s.pages.Search(ctx, term, limit, skip)
	}
	return nil, apperr.BadRequest("Invalid search type")
}
