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
	"github.com/tomtom215/curio/internal/metrics"
	"github.com/tomtom215/curio/internal/moderation"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TagResult reports the outcome of AddTags.
type TagResult struct {
	// Added lists tags that were attached or upvoted for the user.
	Added []string `json:"added"`
	// Duplicates lists tags the user had already added to the item.
	Duplicates []string `json:"duplicates"`
}

// TagsFor returns the aggregated tag counts of ref.
func (db *DB) TagsFor(ctx context.Context, ref catalog.Ref) (catalog.TagVector, error) {
	if err := checkKind(ref.Kind); err != nil {
		return nil, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT tag_id, count FROM item_tags WHERE item_id = ? AND item_type = ?`,
		ref.ID, ref.Kind.String())
	if err != nil {
		track("tags_for", "item_tags", start, err)
		return nil, storeErr("tags_for", "item_tags", err)
	}
	defer closeWithLog(rows, "rows")

	vec := make(catalog.TagVector)
	for rows.Next() {
		var tagID int64
		var count int
		if err := rows.Scan(&tagID, &count); err != nil {
			track("tags_for", "item_tags", start, err)
			return nil, storeErr("tags_for", "item_tags", err)
		}
		if count > 0 {
			vec[tagID] = count
		}
	}
	err = rows.Err()
	track("tags_for", "item_tags", start, err)
	if err != nil {
		return nil, storeErr("tags_for", "item_tags", err)
	}
	return vec, nil
}

// ItemTags returns the tags of ref with their names, highest count first.
func (db *DB) ItemTags(ctx context.Context, ref catalog.Ref) ([]catalog.Tag, error) {
	if err := checkKind(ref.Kind); err != nil {
		return nil, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT t.tag_id, t.tag, it.count
		FROM item_tags it JOIN tags t ON t.tag_id = it.tag_id
		WHERE it.item_id = ? AND it.item_type = ?
		ORDER BY it.count DESC, t.tag`,
		ref.ID, ref.Kind.String())
	if err != nil {
		track("item_tags", "item_tags", start, err)
		return nil, storeErr("item_tags", "item_tags", err)
	}
	defer closeWithLog(rows, "rows")

	tags := []catalog.Tag{}
	for rows.Next() {
		var t catalog.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			track("item_tags", "item_tags", start, err)
			return nil, storeErr("item_tags", "item_tags", err)
		}
		tags = append(tags, t)
	}
	err = rows.Err()
	track("item_tags", "item_tags", start, err)
	if err != nil {
		return nil, storeErr("item_tags", "item_tags", err)
	}
	return tags, nil
}

// AddTags attaches the space-separated tags in raw to ref on behalf of
// userID. If pred flags any token the whole submission is rejected with an
// error wrapping moderation.ErrFlagged. A tag the user already added is
// reported as a duplicate and leaves the count unchanged.
func (db *DB) AddTags(ctx context.Context, userID int64, ref catalog.Ref, raw string, pred moderation.Predicate) (TagResult, error) {
	result := TagResult{Added: []string{}, Duplicates: []string{}}

	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return result, nil
	}
	if moderation.AnyFlagged(pred, tokens) {
		metrics.TagsRejected.Inc()
		return result, fmt.Errorf("tags for %s: %w", ref, moderation.ErrFlagged)
	}
	if _, err := db.GetItem(ctx, ref); err != nil {
		return result, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		track("add_tags", "item_tags", start, err)
		return result, storeErr("add_tags", "item_tags", err)
	}

	for _, name := range tokens {
		added, err := addTag(ctx, tx, userID, ref, name)
		if err != nil {
			_ = tx.Rollback()
			track("add_tags", "item_tags", start, err)
			return TagResult{Added: []string{}, Duplicates: []string{}}, storeErr("add_tags", "item_tags", err)
		}
		if added {
			result.Added = append(result.Added, name)
		} else {
			result.Duplicates = append(result.Duplicates, name)
		}
	}

	err = tx.Commit()
	track("add_tags", "item_tags", start, err)
	if err != nil {
		return TagResult{Added: []string{}, Duplicates: []string{}}, storeErr("add_tags", "item_tags", err)
	}
	return result, nil
}

// addTag attaches one tag and records the user's upvote. It reports false
// when the user had already added the tag.
func addTag(ctx context.Context, q querier, userID int64, ref catalog.Ref, name string) (bool, error) {
	tagID, err := ensureTag(ctx, q, name)
	if err != nil {
		return false, err
	}

	var upvoted int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_upvotes WHERE user_id = ? AND item_id = ? AND item_type = ? AND tag_id = ?`,
		userID, ref.ID, ref.Kind.String(), tagID).Scan(&upvoted); err != nil {
		return false, err
	}
	if upvoted > 0 {
		return false, nil
	}

	if _, err := q.ExecContext(ctx, `
		INSERT INTO item_tags (item_id, item_type, tag_id, count) VALUES (?, ?, ?, 1)
		ON CONFLICT (item_id, item_type, tag_id) DO UPDATE SET count = count + 1`,
		ref.ID, ref.Kind.String(), tagID); err != nil {
		return false, err
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO user_upvotes (user_id, item_id, item_type, tag_id, upvoted_at) VALUES (?, ?, ?, ?, ?)`,
		userID, ref.ID, ref.Kind.String(), tagID, time.Now().Unix()); err != nil {
		return false, err
	}
	return true, nil
}

// ensureTag returns the id of the tag named name, creating it if needed.
func ensureTag(ctx context.Context, q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT tag_id FROM tags WHERE tag = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	err = q.QueryRowContext(ctx, `INSERT INTO tags (tag) VALUES (?) RETURNING tag_id`, name).Scan(&id)
	return id, err
}

// ToggleUpvote flips userID's upvote of tagID on ref and returns the new
// count. Removing the last upvote detaches the tag from the item. The tag
// must already be attached to the item.
func (db *DB) ToggleUpvote(ctx context.Context, userID int64, ref catalog.Ref, tagID int64) (int, error) {
	if err := checkKind(ref.Kind); err != nil {
		return 0, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		track("toggle_upvote", "user_upvotes", start, err)
		return 0, storeErr("toggle_upvote", "user_upvotes", err)
	}

	count, err := toggleUpvote(ctx, tx, userID, ref, tagID)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, catalog.ErrNotFound) {
			track("toggle_upvote", "user_upvotes", start, nil)
			return 0, err
		}
		track("toggle_upvote", "user_upvotes", start, err)
		return 0, storeErr("toggle_upvote", "user_upvotes", err)
	}

	err = tx.Commit()
	track("toggle_upvote", "user_upvotes", start, err)
	if err != nil {
		return 0, storeErr("toggle_upvote", "user_upvotes", err)
	}
	return count, nil
}

func toggleUpvote(ctx context.Context, q querier, userID int64, ref catalog.Ref, tagID int64) (int, error) {
	kind := ref.Kind.String()

	var count int
	err := q.QueryRowContext(ctx,
		`SELECT count FROM item_tags WHERE item_id = ? AND item_type = ? AND tag_id = ?`,
		ref.ID, kind, tagID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("tag %d on %s: %w", tagID, ref, catalog.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	res, err := q.ExecContext(ctx,
		`DELETE FROM user_upvotes WHERE user_id = ? AND item_id = ? AND item_type = ? AND tag_id = ?`,
		userID, ref.ID, kind, tagID)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if removed == 0 {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO user_upvotes (user_id, item_id, item_type, tag_id, upvoted_at) VALUES (?, ?, ?, ?, ?)`,
			userID, ref.ID, kind, tagID, time.Now().Unix()); err != nil {
			return 0, err
		}
		count++
	} else {
		count--
	}

	if count <= 0 {
		_, err = q.ExecContext(ctx,
			`DELETE FROM item_tags WHERE item_id = ? AND item_type = ? AND tag_id = ?`,
			ref.ID, kind, tagID)
		return 0, err
	}
	_, err = q.ExecContext(ctx,
		`UPDATE item_tags SET count = ? WHERE item_id = ? AND item_type = ? AND tag_id = ?`,
		count, ref.ID, kind, tagID)
	return count, err
}

// SetTagCount sets the aggregated count of tag name on ref without recording
// any user upvote. It is used by bulk imports.
func (db *DB) SetTagCount(ctx context.Context, ref catalog.Ref, name string, count int) error {
	if err := checkKind(ref.Kind); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" || count < 1 {
		return fmt.Errorf("%w: tag %q with count %d", catalog.ErrInvalidRef, name, count)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	tagID, err := ensureTag(ctx, db.conn, name)
	if err == nil {
		_, err = db.conn.ExecContext(ctx, `
			INSERT INTO item_tags (item_id, item_type, tag_id, count) VALUES (?, ?, ?, ?)
			ON CONFLICT (item_id, item_type, tag_id) DO UPDATE SET count = excluded.count`,
			ref.ID, ref.Kind.String(), tagID, count)
	}
	track("set_tag_count", "item_tags", start, err)
	if err != nil {
		return storeErr("set_tag_count", "item_tags", err)
	}
	return nil
}
