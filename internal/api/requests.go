// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/curio/internal/catalog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// errBadBody marks malformed request bodies.
var errBadBody = errors.New("malformed request body")

// addItemRequest is the body of POST /api/v1/items/{type}. Only the creator
// fields of the path kind are used.
type addItemRequest struct {
	Title string `json:"title" validate:"required,max=300"`
	Year  string `json:"year" validate:"year"`
	Cover string `json:"cover" validate:"max=2048"`

	Author    string `json:"author" validate:"max=200"`
	Publisher string `json:"publisher" validate:"max=200"`
	ISBN      string `json:"isbn" validate:"max=32"`

	Director          string `json:"director" validate:"max=200"`
	ProductionCompany string `json:"production_company" validate:"max=200"`

	Developer string `json:"developer" validate:"max=200"`
}

// item builds the catalog item of kind from the request.
func (req addItemRequest) item(kind catalog.Kind) (catalog.Item, error) {
	switch kind {
	case catalog.KindBook:
		return catalog.NewBook(0, req.Title, req.Year, req.Cover, catalog.BookDetails{
			Author: req.Author, Publisher: req.Publisher, ISBN: req.ISBN,
		}), nil
	case catalog.KindFilm:
		return catalog.NewFilm(0, req.Title, req.Year, req.Cover, catalog.FilmDetails{
			Director: req.Director, ProductionCompany: req.ProductionCompany,
		}), nil
	case catalog.KindGame:
		return catalog.NewGame(0, req.Title, req.Year, req.Cover, catalog.GameDetails{
			Developer: req.Developer,
		}), nil
	default:
		return catalog.Item{}, fmt.Errorf("kind %d: %w", kind, catalog.ErrInvalidRef)
	}
}

// addTagsRequest is the body of POST .../tags.
type addTagsRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Tags   string `json:"tags" validate:"required,max=500"`
}

// upvoteRequest is the body of POST .../tags/{tag_id}/upvote.
type upvoteRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// pathRef reads the {type} and {id} URL parameters.
func pathRef(r *http.Request) (catalog.Ref, error) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		return catalog.Ref{}, err
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return catalog.Ref{}, fmt.Errorf("id %q: %w", chi.URLParam(r, "id"), catalog.ErrInvalidRef)
	}
	return catalog.NewRef(id, kind), nil
}

// queryFloat parses an optional float query parameter.
func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
