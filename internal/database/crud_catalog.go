// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/curio/internal/catalog"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// kindTable maps a catalog kind onto its table.
type kindTable struct {
	name string
	// columns excluding id, in scan and insert order
	columns []string
	// creator is the column searched alongside the title
	creator string
	scan    func(rowScanner) (catalog.Item, error)
	values  func(catalog.Item) []any
}

var kindTables = map[catalog.Kind]kindTable{
	catalog.KindBook: {
		name:    "books",
		columns: []string{"title", "author", "year", "publisher", "isbn", "cover"},
		creator: "author",
		scan: func(r rowScanner) (catalog.Item, error) {
			var it catalog.Item
			var d catalog.BookDetails
			err := r.Scan(&it.ID, &it.Title, &d.Author, &it.Year, &d.Publisher, &d.ISBN, &it.Cover)
			return catalog.NewBook(it.ID, it.Title, it.Year, it.Cover, d), err
		},
		values: func(it catalog.Item) []any {
			return []any{it.Title, it.Book.Author, it.Year, it.Book.Publisher, it.Book.ISBN, it.Cover}
		},
	},
	catalog.KindFilm: {
		name:    "films",
		columns: []string{"title", "director", "year", "production_company", "cover"},
		creator: "director",
		scan: func(r rowScanner) (catalog.Item, error) {
			var it catalog.Item
			var d catalog.FilmDetails
			err := r.Scan(&it.ID, &it.Title, &d.Director, &it.Year, &d.ProductionCompany, &it.Cover)
			return catalog.NewFilm(it.ID, it.Title, it.Year, it.Cover, d), err
		},
		values: func(it catalog.Item) []any {
			return []any{it.Title, it.Film.Director, it.Year, it.Film.ProductionCompany, it.Cover}
		},
	},
	catalog.KindGame: {
		name:    "games",
		columns: []string{"title", "developer", "year", "cover"},
		creator: "developer",
		scan: func(r rowScanner) (catalog.Item, error) {
			var it catalog.Item
			var d catalog.GameDetails
			err := r.Scan(&it.ID, &it.Title, &d.Developer, &it.Year, &it.Cover)
			return catalog.NewGame(it.ID, it.Title, it.Year, it.Cover, d), err
		},
		values: func(it catalog.Item) []any {
			return []any{it.Title, it.Game.Developer, it.Year, it.Cover}
		},
	},
}

// tableFor returns the table of kind. Callers validate kind first.
func tableFor(kind catalog.Kind) kindTable {
	return kindTables[kind]
}

func (t kindTable) selectList() string {
	return "id, " + strings.Join(t.columns, ", ")
}

func checkKind(kind catalog.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("kind %d: %w", kind, catalog.ErrInvalidRef)
	}
	return nil
}

// GetItem returns the item for ref.
func (db *DB) GetItem(ctx context.Context, ref catalog.Ref) (catalog.Item, error) {
	if err := checkKind(ref.Kind); err != nil {
		return catalog.Item{}, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	t := tableFor(ref.Kind)
	start := time.Now()
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.selectList(), t.name)
	item, err := t.scan(db.conn.QueryRowContext(ctx, query, ref.ID))
	if errors.Is(err, sql.ErrNoRows) {
		track("get", t.name, start, nil)
		return catalog.Item{}, fmt.Errorf("%s: %w", ref, catalog.ErrNotFound)
	}
	track("get", t.name, start, err)
	if err != nil {
		return catalog.Item{}, storeErr("get", t.name, err)
	}
	return item, nil
}

// AllItems returns every item of kind ordered by id.
func (db *DB) AllItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	t := tableFor(kind)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", t.selectList(), t.name)
	return db.queryItems(ctx, "list", t, query)
}

// FindByTitle returns items of kind whose title contains text, case-insensitively.
func (db *DB) FindByTitle(ctx context.Context, kind catalog.Kind, text string) ([]catalog.Item, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	t := tableFor(kind)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE contains(lower(title), lower(?)) ORDER BY id", t.selectList(), t.name)
	return db.queryItems(ctx, "find_title", t, query, text)
}

// findByTitleOrCreator matches query against the title or creator column.
func (db *DB) findByTitleOrCreator(ctx context.Context, kind catalog.Kind, text string) ([]catalog.Item, error) {
	t := tableFor(kind)
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE contains(lower(title), lower(?)) OR contains(lower(%s), lower(?)) ORDER BY id",
		t.selectList(), t.name, t.creator)
	return db.queryItems(ctx, "search", t, query, text, text)
}

func (db *DB) queryItems(ctx context.Context, op string, t kindTable, query string, args ...any) ([]catalog.Item, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		track(op, t.name, start, err)
		return nil, storeErr(op, t.name, err)
	}
	defer closeWithLog(rows, "rows")

	var items []catalog.Item
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			track(op, t.name, start, err)
			return nil, storeErr(op, t.name, err)
		}
		items = append(items, item)
	}
	err = rows.Err()
	track(op, t.name, start, err)
	if err != nil {
		return nil, storeErr(op, t.name, err)
	}
	return items, nil
}

// AddItem inserts item unless an item of the same kind already has exactly
// its title. It returns the stored item and whether it was created. item.ID
// is ignored; ids come from the kind's sequence.
func (db *DB) AddItem(ctx context.Context, item catalog.Item) (catalog.Item, bool, error) {
	if err := item.Validate(); err != nil {
		return catalog.Item{}, false, err
	}
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return catalog.Item{}, false, fmt.Errorf("%w: empty title", catalog.ErrInvalidRef)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	t := tableFor(item.Kind)
	start := time.Now()

	existing, err := t.scan(db.conn.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE title = ? ORDER BY id LIMIT 1", t.selectList(), t.name), item.Title))
	switch {
	case err == nil:
		track("add", t.name, start, nil)
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		track("add", t.name, start, err)
		return catalog.Item{}, false, storeErr("add", t.name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(t.columns, ", "), placeholders)

	var id int64
	err = db.conn.QueryRowContext(ctx, query, t.values(item)...).Scan(&id)
	track("add", t.name, start, err)
	if err != nil {
		return catalog.Item{}, false, storeErr("add", t.name, err)
	}
	item.ID = id
	return item, true, nil
}

// AddBook inserts a book unless one with the same title exists.
func (db *DB) AddBook(ctx context.Context, title, year, cover string, d catalog.BookDetails) (catalog.Item, bool, error) {
	return db.AddItem(ctx, catalog.NewBook(0, title, year, cover, d))
}

// AddFilm inserts a film unless one with the same title exists.
func (db *DB) AddFilm(ctx context.Context, title, year, cover string, d catalog.FilmDetails) (catalog.Item, bool, error) {
	return db.AddItem(ctx, catalog.NewFilm(0, title, year, cover, d))
}

// AddGame inserts a game unless one with the same title exists.
func (db *DB) AddGame(ctx context.Context, title, year, cover string, d catalog.GameDetails) (catalog.Item, bool, error) {
	return db.AddItem(ctx, catalog.NewGame(0, title, year, cover, d))
}

// Recent returns up to n items across all kinds, most recently added first.
func (db *DB) Recent(ctx context.Context, n int) ([]catalog.Item, error) {
	if n <= 0 {
		return nil, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, kind FROM (
			SELECT id, 'book' AS kind, added_seq FROM books
			UNION ALL SELECT id, 'film' AS kind, added_seq FROM films
			UNION ALL SELECT id, 'game' AS kind, added_seq FROM games
		) ORDER BY added_seq DESC LIMIT ?`, n)
	if err != nil {
		track("recent", "items", start, err)
		return nil, storeErr("recent", "items", err)
	}

	var refs []catalog.Ref
	for rows.Next() {
		var id int64
		var kind string
		if err := rows.Scan(&id, &kind); err != nil {
			closeQuietly(rows)
			track("recent", "items", start, err)
			return nil, storeErr("recent", "items", err)
		}
		k, err := catalog.ParseKind(kind)
		if err != nil {
			closeQuietly(rows)
			return nil, err
		}
		refs = append(refs, catalog.NewRef(id, k))
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	track("recent", "items", start, err)
	if err != nil {
		return nil, storeErr("recent", "items", err)
	}

	items := make([]catalog.Item, 0, len(refs))
	for _, ref := range refs {
		item, err := db.GetItem(ctx, ref)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
