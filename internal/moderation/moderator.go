// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package moderation screens user-submitted tag tokens before they reach the catalog.
package moderation

import "errors"

// ErrFlagged is returned when a submission contains a flagged token. The
// whole submission is rejected.
var ErrFlagged = errors.New("moderation: submission contains flagged terms")

// Predicate classifies tokens. The returned slice is parallel to tokens and
// true marks a token as unacceptable.
type Predicate interface {
	Predict(tokens []string) []bool
}

// AnyFlagged reports whether p flags at least one token.
func AnyFlagged(p Predicate, tokens []string) bool {
	if p == nil {
		return false
	}
	for _, flagged := range p.Predict(tokens) {
		if flagged {
			return true
		}
	}
	return false
}

// DefaultBlocklist is used when no blocklist is configured.
var DefaultBlocklist = []string{
	"fuck", "shit", "bitch", "cunt", "bastard", "asshole", "dickhead", "wanker",
}

// Blocklist flags any token with a word that begins with a blocked term.
// Terms inside a word ("Scunthorpe") are not flagged.
type Blocklist struct {
	matcher *Matcher
}

// NewBlocklist builds a blocklist predicate. An empty terms list selects DefaultBlocklist.
func NewBlocklist(terms []string) *Blocklist {
	if len(terms) == 0 {
		terms = DefaultBlocklist
	}
	return &Blocklist{matcher: NewMatcher(terms...)}
}

// Predict implements Predicate.
func (b *Blocklist) Predict(tokens []string) []bool {
	out := make([]bool, len(tokens))
	for i, tok := range tokens {
		out[i] = b.matcher.ContainsAtWordStart(tok)
	}
	return out
}

// Terms returns the number of blocked terms.
func (b *Blocklist) Terms() int {
	return b.matcher.Len()
}
