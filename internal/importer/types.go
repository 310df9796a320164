// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package importer

import (
	"fmt"
	"time"

	"github.com/tomtom215/curio/internal/catalog"
)

// File is a catalog import file.
//
//	items:
//	  - type: book
//	    title: Dune
//	    year: "1965"
//	    author: Frank Herbert
//	    publisher: Chilton Books
//	    tags:
//	      scifi: 3
//	      desert: 1
type File struct {
	Items []Entry `koanf:"items"`
}

// Entry is one item of an import file with its aggregated tag counts.
// Creator fields that do not belong to Type are ignored.
type Entry struct {
	Type  string `koanf:"type" json:"type" validate:"required,mediakind"`
	Title string `koanf:"title" json:"title" validate:"required,max=300"`
	Year  string `koanf:"year" json:"year" validate:"year"`
	Cover string `koanf:"cover" json:"cover" validate:"max=2048"`

	Author            string `koanf:"author" json:"author"`
	Publisher         string `koanf:"publisher" json:"publisher"`
	ISBN              string `koanf:"isbn" json:"isbn"`
	Director          string `koanf:"director" json:"director"`
	ProductionCompany string `koanf:"production_company" json:"production_company"`
	Developer         string `koanf:"developer" json:"developer"`

	Tags map[string]int `koanf:"tags" json:"tags" validate:"dive,keys,required,max=100,endkeys,gte=1"`
}

// Item converts the entry to a catalog item with id 0.
func (e Entry) Item() (catalog.Item, error) {
	kind, err := catalog.ParseKind(e.Type)
	if err != nil {
		return catalog.Item{}, err
	}
	switch kind {
	case catalog.KindBook:
		return catalog.NewBook(0, e.Title, e.Year, e.Cover, catalog.BookDetails{
			Author: e.Author, Publisher: e.Publisher, ISBN: e.ISBN,
		}), nil
	case catalog.KindFilm:
		return catalog.NewFilm(0, e.Title, e.Year, e.Cover, catalog.FilmDetails{
			Director: e.Director, ProductionCompany: e.ProductionCompany,
		}), nil
	default:
		return catalog.NewGame(0, e.Title, e.Year, e.Cover, catalog.GameDetails{
			Developer: e.Developer,
		}), nil
	}
}

// ImportStats holds statistics about an import run.
type ImportStats struct {
	// Total is the number of entries in the file.
	Total int

	// Created counts entries stored as new items.
	Created int

	// Existing counts entries whose title was already in the catalog.
	Existing int

	// Skipped counts entries that failed validation.
	Skipped int

	// Tags counts tag counts written.
	Tags int

	// Errors counts entries that failed to store.
	Errors int

	StartTime time.Time
	EndTime   time.Time

	// DryRun is true when nothing was written.
	DryRun bool
}

// Duration returns how long the import ran.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// String returns a one-line summary.
func (s *ImportStats) String() string {
	return fmt.Sprintf("%d entries: %d created, %d existing, %d skipped, %d errors, %d tags in %s",
		s.Total, s.Created, s.Existing, s.Skipped, s.Errors, s.Tags, s.Duration().Round(time.Millisecond))
}
