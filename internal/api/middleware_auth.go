// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"net/http"
	"strings"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/auth"
	"github.com/commune-social/commune/internal/authz"
	"github.com/commune-social/commune/internal/logging"
)

// RequireAuth verifies the bearer token and stores the caller identity
// in the request context. The three failure messages distinguish a
// missing header, a header without a token, and a token that does not
// verify.
func RequireAuth(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeAppError(w, apperr.New("No token provided or invalid header format", http.StatusUnauthorized, apperr.StatusError))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[1] == "" {
				writeAppError(w, apperr.New("No token found in the header", http.StatusUnauthorized, apperr.StatusError))
				return
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				writeAppError(w, apperr.New("Invalid JWT token", http.StatusUnauthorized, apperr.StatusError))
				return
			}

			principal, err := auth.PrincipalFromClaims(claims)
			if err != nil {
				writeAppError(w, apperr.New("Invalid JWT token", http.StatusUnauthorized, apperr.StatusError))
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the caller's role being allowed the
// action on the resource. Must run after RequireAuth.
func RequireRole(enforcer *authz.Enforcer, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				writeAppError(w, apperr.New("You are not allowed to do this action", http.StatusUnauthorized, apperr.StatusFail))
				return
			}

			allowed, err := enforcer.Allowed(principal.Role, resource, action)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).
					Str("role", string(principal.Role)).
					Str("resource", resource).
					Str("action", action).
					Msg("Role check failed")
				writeAppError(w, apperr.New("You are not allowed to do this action", http.StatusUnauthorized, apperr.StatusFail))
				return
			}
			if !allowed {
				logging.Ctx(r.Context()).Warn().
					Str("role", string(principal.Role)).
					Str("resource", resource).
					Str("action", action).
					Str("path", r.URL.Path).
					Msg("Access denied")
				writeAppError(w, apperr.New("You are not allowed to do this action", http.StatusUnauthorized, apperr.StatusFail))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
