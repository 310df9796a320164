// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/validation"
)

// maxSearchQuery bounds the q parameter of Search.
const maxSearchQuery = 200

// itemResponse is one item with its display fields and tags.
type itemResponse struct {
	Ref    string         `json:"ref"`
	Item   catalog.Item   `json:"item"`
	Fields catalog.Fields `json:"fields"`
	Tags   []catalog.Tag  `json:"tags"`
}

// addItemResponse reports whether AddItem created a new row.
type addItemResponse struct {
	Ref     string       `json:"ref"`
	Item    catalog.Item `json:"item"`
	Created bool         `json:"created"`
}

// GetItem handles GET /api/v1/items/{type}/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ref, err := pathRef(r)
	if err != nil {
		writeError(rw, err)
		return
	}

	item, err := h.catalog.GetItem(r.Context(), ref)
	if err != nil {
		writeError(rw, err)
		return
	}
	fields, err := catalog.Project(item)
	if err != nil {
		writeError(rw, err)
		return
	}
	tags, err := h.catalog.ItemTags(r.Context(), ref)
	if err != nil {
		writeError(rw, err)
		return
	}

	rw.Success(itemResponse{Ref: ref.String(), Item: item, Fields: fields, Tags: tags})
}

// AddItem handles POST /api/v1/items/{type}. An item whose title already
// exists for the kind is returned unchanged with 200; a new item gets 201.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	kind, err := catalog.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		writeError(rw, err)
		return
	}

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr)
		return
	}

	item, err := req.item(kind)
	if err != nil {
		writeError(rw, err)
		return
	}
	stored, created, err := h.catalog.AddItem(r.Context(), item)
	if err != nil {
		writeError(rw, err)
		return
	}

	resp := addItemResponse{Ref: stored.Ref().String(), Item: stored, Created: created}
	if !created {
		rw.Success(resp)
		return
	}
	h.invalidateGraphs()
	h.logger.Info().Str("ref", resp.Ref).Str("title", stored.Title).Msg("Catalog item added")
	rw.Created(resp)
}

// Search handles GET /api/v1/search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, "q is required")
		return
	}
	if len(q) > maxSearchQuery {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, "q must be at most 200 characters")
		return
	}

	results, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		writeError(rw, err)
		return
	}
	rw.List(results, len(results))
}

// Recent handles GET /api/v1/recent?limit=. The limit defaults to 4 and is
// clamped by the engine.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", 4)
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	items, err := h.engine.Recent(r.Context(), limit)
	if err != nil {
		writeError(rw, err)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	rw.List(items, len(items))
}
