// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/metrics"
)

// BreakerStore wraps a catalog.Store with a circuit breaker. While the
// circuit is open every call fails fast with an error wrapping
// catalog.ErrStoreUnavailable; the wrapped store is not called.
//
// Not-found results, invalid refs and caller cancellations count as
// successes so they never trip the breaker.
type BreakerStore struct {
	next catalog.Store
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreakerStore wraps next. The circuit opens once at least
// cfg.MinRequests calls were made in the current interval and the failure
// ratio reaches cfg.FailureRatio.
func NewBreakerStore(next catalog.Store, cfg config.BreakerConfig) *BreakerStore {
	name := cfg.Name
	if name == "" {
		name = "catalog-store"
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: isSuccessful,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *BreakerStore) State() string {
	return stateToString(b.cb.State())
}

// execute runs fn through the breaker.
func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%s: %w: %w", b.name, catalog.ErrStoreUnavailable, err)
		}
		if isSuccessful(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// isSuccessful reports whether err leaves the breaker counts untouched.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrInvalidRef) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetItem implements catalog.CatalogStore.
func (b *BreakerStore) GetItem(ctx context.Context, ref catalog.Ref) (catalog.Item, error) {
	return castResult[catalog.Item](b.execute(func() (interface{}, error) {
		return b.next.GetItem(ctx, ref)
	}))
}

// AllItems implements catalog.CatalogStore.
func (b *BreakerStore) AllItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	return castResult[[]catalog.Item](b.execute(func() (interface{}, error) {
		return b.next.AllItems(ctx, kind)
	}))
}

// FindByTitle implements catalog.CatalogStore.
func (b *BreakerStore) FindByTitle(ctx context.Context, kind catalog.Kind, text string) ([]catalog.Item, error) {
	return castResult[[]catalog.Item](b.execute(func() (interface{}, error) {
		return b.next.FindByTitle(ctx, kind, text)
	}))
}

// TagsFor implements catalog.TagStore.
func (b *BreakerStore) TagsFor(ctx context.Context, ref catalog.Ref) (catalog.TagVector, error) {
	return castResult[catalog.TagVector](b.execute(func() (interface{}, error) {
		return b.next.TagsFor(ctx, ref)
	}))
}

// Recent implements catalog.RecentStore.
func (b *BreakerStore) Recent(ctx context.Context, n int) ([]catalog.Item, error) {
	return castResult[[]catalog.Item](b.execute(func() (interface{}, error) {
		return b.next.Recent(ctx, n)
	}))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
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

// stateToString converts circuit breaker state to string for logging
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
