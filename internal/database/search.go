// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package database

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/curio/internal/catalog"
)

// SearchResult is one matched item with its tags.
type SearchResult struct {
	Kind catalog.Kind  `json:"type"`
	Item catalog.Item  `json:"item"`
	Tags []catalog.Tag `json:"tags"`
}

// Search matches query against titles and creators of every kind, then adds
// items carrying a tag that contains any word of query. Results are grouped
// by kind in the order book, film, game; within a kind direct matches come
// first in id order. Each item appears once.
func (db *DB) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	byKind := make(map[catalog.Kind][]catalog.Item, len(catalog.Kinds))
	seen := make(map[catalog.Ref]bool)
	for _, kind := range catalog.Kinds {
		items, err := db.findByTitleOrCreator(ctx, kind, query)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			seen[it.Ref()] = true
		}
		byKind[kind] = items
	}

	for _, word := range strings.Fields(query) {
		refs, err := db.refsWithTagLike(ctx, word)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			if seen[ref] {
				continue
			}
			it, err := db.GetItem(ctx, ref)
			if err != nil {
				return nil, err
			}
			seen[ref] = true
			byKind[ref.Kind] = append(byKind[ref.Kind], it)
		}
	}

	results := []SearchResult{}
	for _, kind := range catalog.Kinds {
		for _, it := range byKind[kind] {
			tags, err := db.ItemTags(ctx, it.Ref())
			if err != nil {
				return nil, err
			}
			results = append(results, SearchResult{Kind: kind, Item: it, Tags: tags})
		}
	}
	return results, nil
}

// refsWithTagLike returns the items carrying a tag whose text contains word.
func (db *DB) refsWithTagLike(ctx context.Context, word string) ([]catalog.Ref, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT DISTINCT it.item_id, it.item_type
		FROM tags t JOIN item_tags it ON it.tag_id = t.tag_id
		WHERE contains(lower(t.tag), lower(?))
		ORDER BY it.item_type, it.item_id`, word)
	if err != nil {
		track("search_tags", "tags", start, err)
		return nil, storeErr("search_tags", "tags", err)
	}
	defer closeWithLog(rows, "rows")

	var refs []catalog.Ref
	for rows.Next() {
		var id int64
		var kind string
		if err := rows.Scan(&id, &kind); err != nil {
			track("search_tags", "tags", start, err)
			return nil, storeErr("search_tags", "tags", err)
		}
		k, err := catalog.ParseKind(kind)
		if err != nil {
			// rows of an unknown kind cannot be resolved
			continue
		}
		refs = append(refs, catalog.NewRef(id, k))
	}
	err = rows.Err()
	track("search_tags", "tags", start, err)
	if err != nil {
		return nil, storeErr("search_tags", "tags", err)
	}
	return refs, nil
}
