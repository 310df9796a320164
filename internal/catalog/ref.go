// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref identifies one catalog item. Two refs are equal when both ID and Kind match;
// a book and a film may share a numeric ID.
type Ref struct {
	ID   int64
	Kind Kind
}

// NewRef returns a Ref for the given id and kind.
func NewRef(id int64, kind Kind) Ref {
	return Ref{ID: id, Kind: kind}
}

// String renders the ref as "{id} {kind}".
func (r Ref) String() string {
	return strconv.FormatInt(r.ID, 10) + " " + r.Kind.String()
}

// Valid reports whether the ref has a positive id and a known kind.
func (r Ref) Valid() bool {
	return r.ID > 0 && r.Kind.Valid()
}

// ParseRef parses the "{id} {kind}" form produced by Ref.String.
func ParseRef(s string) (Ref, error) {
	idPart, kindPart, ok := strings.Cut(s, " ")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q is not of the form \"{id} {kind}\"", ErrInvalidRef, s)
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: id %q is not numeric", ErrInvalidRef, idPart)
	}
	if id <= 0 {
		return Ref{}, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidRef, id)
	}

	// The kind part is an exact wire name; "12 book extra" is rejected.
	kind, err := ParseKind(kindPart)
	if err != nil || strings.TrimSpace(kindPart) != kindPart {
		return Ref{}, fmt.Errorf("%w: kind %q", ErrInvalidRef, kindPart)
	}

	return Ref{ID: id, Kind: kind}, nil
}

// MarshalText implements encoding.TextMarshaler so refs can key JSON maps.
func (r Ref) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d %d", ErrInvalidRef, r.ID, r.Kind)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
