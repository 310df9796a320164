// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"fmt"
	"strings"
)

// Kind is the media category of a catalog item.
type Kind uint8

const (
	// KindUnknown is the zero value and never names a stored item.
	KindUnknown Kind = iota
	KindBook
	KindFilm
	KindGame
)

// Kinds lists every valid kind in catalog scan order.
var Kinds = []Kind{KindBook, KindFilm, KindGame}

// String returns the wire name of the kind ("book", "film", "game").
func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindFilm:
		return "film"
	case KindGame:
		return "game"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the three catalog kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBook, KindFilm, KindGame:
		return true
	default:
		return false
	}
}

// ParseKind parses a wire kind name. Matching is case-insensitive and
// surrounding whitespace is ignored.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book":
		return KindBook, nil
	case "film":
		return KindFilm, nil
	case "game":
		return KindGame, nil
	default:
		return KindUnknown, fmt.Errorf("%w: unknown kind %q", ErrInvalidRef, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: cannot marshal kind %d", ErrInvalidRef, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
