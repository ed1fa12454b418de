// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package upload

import (
	"context"
	"errors"
	"io"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/commune-social/commune/internal/logging"
	"github.com/commune-social/commune/internal/metrics"
)

// BreakerStore wraps a Store with a circuit breaker so a failing disk
// (full volume, revoked mount) sheds upload traffic quickly instead of
// tying up request handlers on writes that will not succeed.
type BreakerStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker[string]
	name  string
}

// NewBreakerStore wraps inner with a circuit breaker.
// The circuit opens after 5 consecutive failures and retries after 30 seconds.
func NewBreakerStore(inner Store) *BreakerStore {
	cbName := "upload-store"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Oversize uploads are client mistakes, not disk trouble.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTooLarge)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Warn().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Upload circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerStore{inner: inner, cb: cb, name: cbName}
}

// Save delegates to the wrapped store under circuit breaker protection.
// When the circuit is open the call fails immediately with
// gobreaker.ErrOpenState without touching the disk.
func (s *BreakerStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.cb.Execute(func() (string, error) {
		return s.inner.Save(ctx, filename, r)
	})
}

// State reports the breaker state for health reporting.
func (s *BreakerStore) State() string {
	return s.cb.State().String()
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
