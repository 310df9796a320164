// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package moderation

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Matcher is a case-insensitive Aho-Corasick automaton. It finds every
// occurrence of a set of patterns in O(n + m + z) for text length n, total
// pattern length m and z matches.
//
//	m := NewMatcher("darn", "heck")
//	m.Contains("what the HECK") // true
type Matcher struct {
	mu       sync.RWMutex
	root     *acNode
	patterns []string
	built    bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into patterns ending here
}

// Match is one pattern occurrence. Position is a byte offset into the lowered text.
type Match struct {
	Pattern  string
	Position int
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewMatcher returns a built matcher for patterns. Empty patterns are ignored.
func NewMatcher(patterns ...string) *Matcher {
	m := &Matcher{root: newACNode()}
	for _, p := range patterns {
		m.Add(p)
	}
	m.Build()
	return m
}

// Add registers a pattern. The automaton must be rebuilt before it is matched.
func (m *Matcher) Add(pattern string) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.patterns = append(m.patterns, pattern)
	m.built = false
}

// Build constructs the trie and failure links.
func (m *Matcher) Build() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.built {
		return
	}

	m.root = newACNode()
	for i, p := range m.patterns {
		node := m.root
		for _, ch := range p {
			next := node.children[ch]
			if next == nil {
				next = newACNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}

	m.built = true
}

// Search returns every match in text, in order of the position where each ends.
func (m *Matcher) Search(text string) []Match {
	var matches []Match
	m.scan(text, func(pattern string, pos int) bool {
		matches = append(matches, Match{Pattern: pattern, Position: pos})
		return true
	})
	return matches
}

// Contains reports whether any pattern occurs in text.
func (m *Matcher) Contains(text string) bool {
	found := false
	m.scan(text, func(string, int) bool {
		found = true
		return false
	})
	return found
}

// ContainsAtWordStart reports whether a pattern occurs in text starting at
// the beginning of a word. A word starts at the beginning of text or after a
// rune that is neither a letter nor a digit, so "darn-it" and "DARNit" match
// "darn" but "Scunthorpe" does not match "cunt".
func (m *Matcher) ContainsAtWordStart(text string) bool {
	lowered := strings.ToLower(text)
	found := false
	m.scan(text, func(_ string, pos int) bool {
		if wordStart(lowered, pos) {
			found = true
			return false
		}
		return true
	})
	return found
}

func wordStart(text string, pos int) bool {
	if pos <= 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

// Len returns the number of registered patterns.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.patterns)
}

// scan walks the automaton over text, calling emit for each match until it
// returns false.
func (m *Matcher) scan(text string, emit func(pattern string, pos int) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.built || len(m.patterns) == 0 {
		return
	}

	node := m.root
	for i, ch := range strings.ToLower(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]

		end := i + utf8.RuneLen(ch)
		for _, idx := range node.output {
			p := m.patterns[idx]
			if !emit(p, end-len(p)) {
				return
			}
		}
	}
}
