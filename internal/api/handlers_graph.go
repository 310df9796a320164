// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/curio/internal/cache"
	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/recommend"
)

// graphQuery identifies the seed of a graph request.
type graphQuery struct {
	Kind  catalog.Kind     `json:"type"`
	ID    int64            `json:"id,omitempty"`
	Title string           `json:"title,omitempty"`
	P     recommend.Params `json:"params"`
}

// parseGraphQuery reads type, id or title, weighting and top_n. Missing
// weighting and top_n take the engine defaults; range checks are left to
// the engine.
func (h *Handler) parseGraphQuery(r *http.Request) (graphQuery, error) {
	q := r.URL.Query()

	kind, err := catalog.ParseKind(q.Get("type"))
	if err != nil {
		return graphQuery{}, err
	}
	gq := graphQuery{Kind: kind, Title: strings.TrimSpace(q.Get("title"))}

	if raw := strings.TrimSpace(q.Get("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return graphQuery{}, fmt.Errorf("id %q: %w", raw, catalog.ErrInvalidRef)
		}
		gq.ID = id
		gq.Title = ""
	}
	if gq.ID == 0 && gq.Title == "" {
		return graphQuery{}, fmt.Errorf("%w: id or title is required", recommend.ErrInvalidParameters)
	}

	defaults := h.engine.DefaultParams()
	threshold, err := queryFloat(r, "weighting", defaults.Threshold)
	if err != nil {
		return graphQuery{}, fmt.Errorf("%w: %s", recommend.ErrInvalidParameters, err)
	}
	topN, err := queryInt(r, "top_n", defaults.TopN)
	if err != nil {
		return graphQuery{}, fmt.Errorf("%w: %s", recommend.ErrInvalidParameters, err)
	}
	gq.P = recommend.Params{Threshold: threshold, TopN: topN}
	return gq, nil
}

// Graph handles GET /api/v1/graph.
//
//	?type=book&id=1&weighting=3&top_n=5
//	?type=film&title=dune
//
// The response data is {seed, graph: {nodes, links}, metadata}.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	gq, err := h.parseGraphQuery(r)
	if err != nil {
		writeError(rw, err)
		return
	}
	if err := gq.P.Validate(); err != nil {
		writeError(rw, err)
		return
	}

	var key string
	gen := h.graphGeneration()
	if h.graphs != nil {
		key = cache.GenerateKey("graph", gq)
		if res, ok := h.graphs.Get(key); ok {
			rw.SuccessWithMeta(res, &APIMeta{Cached: true})
			return
		}
	}

	var res *recommend.Result
	if gq.ID != 0 {
		res, err = h.engine.Generate(r.Context(), catalog.NewRef(gq.ID, gq.Kind), gq.P)
	} else {
		res, err = h.engine.GenerateByTitle(r.Context(), gq.Kind, gq.Title, gq.P)
	}
	if err != nil {
		writeError(rw, err)
		return
	}

	if !h.storeGraph(key, res, gen) && h.graphs != nil {
		h.logger.Debug().Str("seed", res.Seed).Msg("Catalog changed during graph build, not caching")
	}
	rw.Success(res)
}
