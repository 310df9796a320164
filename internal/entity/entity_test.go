// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package entity

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/curio/internal/logging"
)

type countingExtractor struct {
	mu    sync.Mutex
	calls map[string]int
	sets  map[string]Set
	err   error
}

func newCountingExtractor(sets map[string]Set) *countingExtractor {
	return &countingExtractor{calls: map[string]int{}, sets: sets}
}

func (c *countingExtractor) Extract(_ context.Context, title string) (Set, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[title]++
	if c.err != nil {
		return nil, c.err
	}
	if s, ok := c.sets[title]; ok {
		return s, nil
	}
	return Set{}, nil
}

func (c *countingExtractor) count(title string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[title]
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (Set, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (failingStore) Put(context.Context, string, Set) error {
	return errors.New("disk on fire")
}

func TestSet_Common(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want int
	}{
		{"both empty", Set{}, Set{}, 0},
		{"nil and set", nil, Set{"Dune": "GPE"}, 0},
		{"same text different label", Set{"Dune": "GPE"}, Set{"Dune": "PERSON"}, 1},
		{"partial", Set{"Frank Herbert": "PERSON", "Arrakis": "GPE"}, Set{"Arrakis": "GPE"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Common(tt.b); got != tt.want {
				t.Errorf("Common() = %d, want %d", got, tt.want)
			}
			if got := tt.b.Common(tt.a); got != tt.want {
				t.Errorf("Common() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCachedExtractor_MemoryHit(t *testing.T) {
	next := newCountingExtractor(map[string]Set{"Harry Potter": {"Harry Potter": "PERSON"}})
	c := NewCachedExtractor(next, 10, time.Minute, nil, logging.NewTestLogger(&bytes.Buffer{}))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		set, err := c.Extract(ctx, "Harry Potter")
		if err != nil {
			t.Fatalf("Extract() error: %v", err)
		}
		if set["Harry Potter"] != "PERSON" {
			t.Errorf("Extract() = %v", set)
		}
	}

	if got := next.count("Harry Potter"); got != 1 {
		t.Errorf("underlying extractor called %d times, want 1", got)
	}
}

func TestCachedExtractor_PersistentStore(t *testing.T) {
	store, err := OpenBadgerStore("")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	next := newCountingExtractor(map[string]Set{"Blade Runner": {"Blade Runner": "PERSON"}})
	logger := logging.NewTestLogger(&bytes.Buffer{})

	first := NewCachedExtractor(next, 10, time.Minute, store, logger)
	if _, err := first.Extract(ctx, "Blade Runner"); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	// a fresh memory cache must be served from the store
	second := NewCachedExtractor(next, 10, time.Minute, store, logger)
	set, err := second.Extract(ctx, "Blade Runner")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if set["Blade Runner"] != "PERSON" {
		t.Errorf("Extract() = %v", set)
	}
	if got := next.count("Blade Runner"); got != 1 {
		t.Errorf("underlying extractor called %d times, want 1", got)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestCachedExtractor_StoreFailureFallsThrough(t *testing.T) {
	var buf bytes.Buffer
	next := newCountingExtractor(nil)
	c := NewCachedExtractor(next, 10, time.Minute, failingStore{}, logging.NewTestLogger(&buf))

	set, err := c.Extract(context.Background(), "Tetris")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Extract() = %v, want empty", set)
	}
	if !strings.Contains(buf.String(), "Entity store read failed") {
		t.Errorf("expected store failure to be logged, got: %s", buf.String())
	}
}

func TestCachedExtractor_ErrorNotCached(t *testing.T) {
	next := newCountingExtractor(nil)
	next.err = errors.New("model unavailable")
	c := NewCachedExtractor(next, 10, time.Minute, nil, logging.NewTestLogger(&bytes.Buffer{}))

	for i := 0; i < 2; i++ {
		if _, err := c.Extract(context.Background(), "Alien"); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := next.count("Alien"); got != 2 {
		t.Errorf("underlying extractor called %d times, want 2", got)
	}
}

func TestBadgerStore_GetMissing(t *testing.T) {
	store, err := OpenBadgerStore("")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Get(context.Background(), "nothing here")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() found a missing title")
	}
	if err := store.RunGC(0.5); err != nil {
		t.Errorf("RunGC() in memory mode error: %v", err)
	}
}

func TestProseExtractor_EmptyTitle(t *testing.T) {
	p := NewProseExtractor("")
	set, err := p.Extract(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Extract() = %v, want empty", set)
	}
}

func TestProseExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProseExtractor("").Extract(ctx, "The Lord of the Rings"); !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestProseExtractor_Extract(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the NER model")
	}

	p := NewProseExtractor("")
	set, err := p.Extract(context.Background(), "Harry Potter and the Philosopher's Stone")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	for text, label := range set {
		if text == "" || label == "" {
			t.Errorf("entity with empty text or label: %q=%q", text, label)
		}
	}
}
