// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import "errors"

var (
	// ErrNotFound is returned when a referenced item does not exist.
	ErrNotFound = errors.New("catalog: item not found")

	// ErrStoreUnavailable is returned when the backing store fails or the
	// store circuit breaker is open. Callers do not retry.
	ErrStoreUnavailable = errors.New("catalog: store unavailable")

	// ErrInvalidRef is returned for malformed reference strings and unknown kinds.
	ErrInvalidRef = errors.New("catalog: invalid item reference")
)
