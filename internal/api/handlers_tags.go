// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/validation"
)

// addTagsResponse echoes the item with the outcome of AddTags.
type addTagsResponse struct {
	Ref string `json:"ref"`
	database.TagResult
	Tags []catalog.Tag `json:"tags"`
}

// upvoteResponse reports the new count of a toggled tag. Count 0 means the
// tag was detached from the item.
type upvoteResponse struct {
	Ref   string `json:"ref"`
	TagID int64  `json:"tag_id"`
	Count int    `json:"count"`
}

// AddTags handles POST /api/v1/items/{type}/{id}/tags with body
// {"user_id": 1, "tags": "desert politics"}.
func (h *Handler) AddTags(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ref, err := pathRef(r)
	if err != nil {
		writeError(rw, err)
		return
	}

	var req addTagsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	result, err := h.catalog.AddTags(r.Context(), req.UserID, ref, req.Tags, h.moderator)
	if err != nil {
		writeError(rw, err)
		return
	}
	if len(result.Added) > 0 {
		h.invalidateGraphs()
	}

	tags, err := h.catalog.ItemTags(r.Context(), ref)
	if err != nil {
		writeError(rw, err)
		return
	}
	rw.Success(addTagsResponse{Ref: ref.String(), TagResult: result, Tags: tags})
}

// ToggleUpvote handles POST /api/v1/items/{type}/{id}/tags/{tag_id}/upvote
// with body {"user_id": 1}.
func (h *Handler) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ref, err := pathRef(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	tagID, err := strconv.ParseInt(chi.URLParam(r, "tag_id"), 10, 64)
	if err != nil || tagID < 1 {
		writeError(rw, fmt.Errorf("tag id %q: %w", chi.URLParam(r, "tag_id"), catalog.ErrInvalidRef))
		return
	}

	var req upvoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	count, err := h.catalog.ToggleUpvote(r.Context(), req.UserID, ref, tagID)
	if err != nil {
		writeError(rw, err)
		return
	}
	h.invalidateGraphs()
	rw.Success(upvoteResponse{Ref: ref.String(), TagID: tagID, Count: count})
}
