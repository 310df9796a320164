// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/moderation"
)

// testDBSemaphore allows one DuckDB instance at a time across tests.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: InMemoryPath, MaxMemory: "256MB", Threads: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close: %v", err)
		}
	})
	return db
}

// seedCatalog inserts the Dune book and film plus Tetris.
func seedCatalog(t *testing.T, db *DB) (book, film, game catalog.Item) {
	t.Helper()
	ctx := context.Background()

	var err error
	book, _, err = db.AddBook(ctx, "Dune", "1965", "", catalog.BookDetails{Author: "Frank Herbert", Publisher: "Chilton"})
	require.NoError(t, err)
	film, _, err = db.AddFilm(ctx, "Dune", "2021", "", catalog.FilmDetails{Director: "Denis Villeneuve"})
	require.NoError(t, err)
	game, _, err = db.AddGame(ctx, "Tetris", "1984", "", catalog.GameDetails{Developer: "Alexey Pajitnov"})
	require.NoError(t, err)
	return book, film, game
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Ping(context.Background()))
	assert.Equal(t, InMemoryPath, db.GetDatabasePath())

	counts, err := db.RecordCounts(context.Background())
	require.NoError(t, err)
	for _, kind := range catalog.Kinds {
		assert.Zero(t, counts[kind], kind.String())
	}
}

func TestAddItem_AssignsIDsPerKind(t *testing.T) {
	db := setupTestDB(t)
	book, film, game := seedCatalog(t, db)

	assert.Equal(t, catalog.NewRef(1, catalog.KindBook), book.Ref())
	assert.Equal(t, catalog.NewRef(1, catalog.KindFilm), film.Ref())
	assert.Equal(t, catalog.NewRef(1, catalog.KindGame), game.Ref())

	got, err := db.GetItem(context.Background(), book.Ref())
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "1965", got.Year)
	require.NotNil(t, got.Book)
	assert.Equal(t, "Frank Herbert", got.Book.Author)
	assert.Equal(t, "Chilton", got.Book.Publisher)
}

func TestAddItem_DeduplicatesTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, created, err := db.AddBook(ctx, "Dune", "1965", "", catalog.BookDetails{Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := db.AddBook(ctx, "  Dune ", "1999", "", catalog.BookDetails{Author: "Someone Else"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Frank Herbert", second.Book.Author)

	counts, err := db.RecordCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[catalog.KindBook])
}

func TestAddItem_Invalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, _, err := db.AddBook(ctx, "   ", "", "", catalog.BookDetails{})
	assert.ErrorIs(t, err, catalog.ErrInvalidRef)

	mismatched := catalog.NewBook(0, "Dune", "", "", catalog.BookDetails{})
	mismatched.Kind = catalog.KindFilm
	_, _, err = db.AddItem(ctx, mismatched)
	assert.ErrorIs(t, err, catalog.ErrInvalidRef)
}

func TestGetItem_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetItem(context.Background(), catalog.NewRef(42, catalog.KindFilm))
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = db.GetItem(context.Background(), catalog.NewRef(1, catalog.Kind(9)))
	assert.ErrorIs(t, err, catalog.ErrInvalidRef)
}

func TestAllItemsAndFindByTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedCatalog(t, db)
	_, _, err := db.AddBook(ctx, "Children of Dune", "1976", "", catalog.BookDetails{Author: "Frank Herbert"})
	require.NoError(t, err)

	books, err := db.AllItems(ctx, catalog.KindBook)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Children of Dune", books[1].Title)

	found, err := db.FindByTitle(ctx, catalog.KindBook, "dUNE")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = db.FindByTitle(ctx, catalog.KindGame, "dune")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRecent_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	items, err := db.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tetris", items[0].Title)
	assert.Equal(t, catalog.KindFilm, items[1].Kind)

	none, err := db.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddTags(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	book, _, _ := seedCatalog(t, db)
	pred := moderation.NewBlocklist(nil)

	res, err := db.AddTags(ctx, 1, book.Ref(), "desert  politics", pred)
	require.NoError(t, err)
	assert.Equal(t, []string{"desert", "politics"}, res.Added)
	assert.Empty(t, res.Duplicates)

	// same user again: duplicate, count unchanged
	res, err = db.AddTags(ctx, 1, book.Ref(), "desert", pred)
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Equal(t, []string{"desert"}, res.Duplicates)

	// another user upvotes
	_, err = db.AddTags(ctx, 2, book.Ref(), "desert", pred)
	require.NoError(t, err)

	tags, err := db.ItemTags(ctx, book.Ref())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "desert", tags[0].Name)
	assert.Equal(t, 2, tags[0].Count)
	assert.Equal(t, "politics", tags[1].Name)
	assert.Equal(t, 1, tags[1].Count)

	vec, err := db.TagsFor(ctx, book.Ref())
	require.NoError(t, err)
	assert.Equal(t, catalog.Vector(tags), vec)
}

func TestAddTags_Rejected(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	book, _, _ := seedCatalog(t, db)

	_, err := db.AddTags(ctx, 1, book.Ref(), "desert spoilerword", moderation.NewBlocklist([]string{"spoiler"}))
	assert.ErrorIs(t, err, moderation.ErrFlagged)

	// nothing from the rejected submission is stored
	tags, err := db.ItemTags(ctx, book.Ref())
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestAddTags_MissingItem(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.AddTags(context.Background(), 1, catalog.NewRef(7, catalog.KindGame), "puzzle", moderation.NewBlocklist(nil))
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestToggleUpvote(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, film, _ := seedCatalog(t, db)
	pred := moderation.NewBlocklist(nil)

	_, err := db.AddTags(ctx, 1, film.Ref(), "sandworms", pred)
	require.NoError(t, err)
	tags, err := db.ItemTags(ctx, film.Ref())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	tagID := tags[0].ID

	count, err := db.ToggleUpvote(ctx, 2, film.Ref(), tagID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = db.ToggleUpvote(ctx, 2, film.Ref(), tagID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// removing the last upvote detaches the tag
	count, err = db.ToggleUpvote(ctx, 1, film.Ref(), tagID)
	require.NoError(t, err)
	assert.Zero(t, count)
	tags, err = db.ItemTags(ctx, film.Ref())
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = db.ToggleUpvote(ctx, 1, film.Ref(), tagID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSetTagCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	book, _, _ := seedCatalog(t, db)

	require.NoError(t, db.SetTagCount(ctx, book.Ref(), "spice", 3))
	require.NoError(t, db.SetTagCount(ctx, book.Ref(), "spice", 5))

	tags, err := db.ItemTags(ctx, book.Ref())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 5, tags[0].Count)

	err = db.SetTagCount(ctx, book.Ref(), "spice", 0)
	assert.ErrorIs(t, err, catalog.ErrInvalidRef)
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, _, game := seedCatalog(t, db)
	require.NoError(t, db.SetTagCount(ctx, game.Ref(), "desert-puzzle", 1))

	results, err := db.Search(ctx, "dune")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, catalog.KindBook, results[0].Kind)
	assert.Equal(t, catalog.KindFilm, results[1].Kind)

	// creator match
	results, err = db.Search(ctx, "villeneuve")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, catalog.KindFilm, results[0].Kind)

	// tag match
	results, err = db.Search(ctx, "desert")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tetris", results[0].Item.Title)
	require.Len(t, results[0].Tags, 1)

	results, err = db.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCanceledContext(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.AllItems(ctx, catalog.KindBook)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
}

func TestExpiredDeadlineIsNotStoreUnavailable(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := db.GetItem(ctx, catalog.NewRef(1, catalog.KindBook))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
}

func TestStoreErr(t *testing.T) {
	err := storeErr("get", "books", errors.New("io error"))
	assert.ErrorIs(t, err, catalog.ErrStoreUnavailable)

	err = storeErr("get", "books", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, catalog.ErrStoreUnavailable)
}
