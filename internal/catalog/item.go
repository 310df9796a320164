// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import "fmt"

// BookDetails holds the fields only books carry.
type BookDetails struct {
	Author    string `json:"author" koanf:"author"`
	Publisher string `json:"publisher" koanf:"publisher"`
	ISBN      string `json:"isbn" koanf:"isbn"`
}

// FilmDetails holds the fields only films carry.
type FilmDetails struct {
	Director          string `json:"director" koanf:"director"`
	ProductionCompany string `json:"production_company" koanf:"production_company"`
}

// GameDetails holds the fields only games carry.
type GameDetails struct {
	Developer string `json:"developer" koanf:"developer"`
}

// Item is one catalog record. Exactly one of Book, Film or Game is set and it
// matches Kind; the constructors below are the supported way to build one.
// Items are read-only once fetched from a store.
type Item struct {
	ID    int64  `json:"id"`
	Kind  Kind   `json:"type"`
	Title string `json:"title"`
	Year  string `json:"year"`
	Cover string `json:"cover,omitempty"`

	Book *BookDetails `json:"book,omitempty"`
	Film *FilmDetails `json:"film,omitempty"`
	Game *GameDetails `json:"game,omitempty"`
}

// NewBook returns a book item.
func NewBook(id int64, title, year, cover string, d BookDetails) Item {
	return Item{ID: id, Kind: KindBook, Title: title, Year: year, Cover: cover, Book: &d}
}

// NewFilm returns a film item.
func NewFilm(id int64, title, year, cover string, d FilmDetails) Item {
	return Item{ID: id, Kind: KindFilm, Title: title, Year: year, Cover: cover, Film: &d}
}

// NewGame returns a game item.
func NewGame(id int64, title, year, cover string, d GameDetails) Item {
	return Item{ID: id, Kind: KindGame, Title: title, Year: year, Cover: cover, Game: &d}
}

// Ref returns the item's reference.
func (it Item) Ref() Ref {
	return Ref{ID: it.ID, Kind: it.Kind}
}

// Creator returns the author, director or developer of the item.
func (it Item) Creator() string {
	switch it.Kind {
	case KindBook:
		if it.Book != nil {
			return it.Book.Author
		}
	case KindFilm:
		if it.Film != nil {
			return it.Film.Director
		}
	case KindGame:
		if it.Game != nil {
			return it.Game.Developer
		}
	}
	return ""
}

// Validate checks that the variant payload agrees with Kind.
func (it Item) Validate() error {
	switch it.Kind {
	case KindBook:
		if it.Book == nil || it.Film != nil || it.Game != nil {
			return fmt.Errorf("%w: book %d has mismatched details", ErrInvalidRef, it.ID)
		}
	case KindFilm:
		if it.Film == nil || it.Book != nil || it.Game != nil {
			return fmt.Errorf("%w: film %d has mismatched details", ErrInvalidRef, it.ID)
		}
	case KindGame:
		if it.Game == nil || it.Book != nil || it.Film != nil {
			return fmt.Errorf("%w: game %d has mismatched details", ErrInvalidRef, it.ID)
		}
	default:
		return fmt.Errorf("%w: item %d has kind %d", ErrInvalidRef, it.ID, it.Kind)
	}
	return nil
}
