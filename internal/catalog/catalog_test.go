// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

import (
	"errors"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindBook, "book"},
		{KindFilm, "film"},
		{KindGame, "game"},
		{KindUnknown, "unknown"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{"book", "book", KindBook, false},
		{"film uppercase", "FILM", KindFilm, false},
		{"game padded", " game ", KindGame, false},
		{"empty", "", KindUnknown, true},
		{"music is not a kind", "music", KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRef) {
				t.Errorf("ParseKind(%q) error %v does not wrap ErrInvalidRef", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRef_StringParseRoundTrip(t *testing.T) {
	for _, kind := range Kinds {
		ref := NewRef(12, kind)
		parsed, err := ParseRef(ref.String())
		if err != nil {
			t.Fatalf("ParseRef(%q) unexpected error: %v", ref.String(), err)
		}
		if parsed != ref {
			t.Errorf("ParseRef(%q) = %+v, want %+v", ref.String(), parsed, ref)
		}
	}

	if got := NewRef(7, KindFilm).String(); got != "7 film" {
		t.Errorf("String() = %q, want %q", got, "7 film")
	}
}

func TestParseRef_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"12",
		"book 12",
		"12 music",
		"0 book",
		"-3 game",
		"12  book",
		"12 book extra",
		"x film",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRef(in)
			if err == nil {
				t.Fatalf("ParseRef(%q) expected error", in)
			}
			if !errors.Is(err, ErrInvalidRef) {
				t.Errorf("ParseRef(%q) error %v does not wrap ErrInvalidRef", in, err)
			}
		})
	}
}

func TestRef_MarshalText(t *testing.T) {
	text, err := NewRef(3, KindGame).MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(text) != "3 game" {
		t.Errorf("MarshalText() = %q, want %q", text, "3 game")
	}

	if _, err := (Ref{ID: 3}).MarshalText(); err == nil {
		t.Error("MarshalText() on unknown kind should fail")
	}
}

func TestProject(t *testing.T) {
	book := NewBook(1, "Dune", "1965", "dune.jpg", BookDetails{Author: "Frank Herbert", Publisher: "Chilton", ISBN: "9780441013593"})
	film := NewFilm(2, "Dune", "2021", "dune-film.jpg", FilmDetails{Director: "Denis Villeneuve", ProductionCompany: "Legendary"})
	game := NewGame(3, "Tetris", "1984", "", GameDetails{Developer: "Alexey Pajitnov"})

	tests := []struct {
		name string
		item Item
		want Fields
	}{
		{
			name: "book",
			item: book,
			want: Fields{"Title": "Dune", "Author": "Frank Herbert", "Year": "1965", "Publisher": "Chilton", "Cover": "dune.jpg"},
		},
		{
			name: "film",
			item: film,
			want: Fields{"Title": "Dune", "Director": "Denis Villeneuve", "Year": "2021", "Production Company": "Legendary", "Cover": "dune-film.jpg"},
		},
		{
			name: "game",
			item: game,
			want: Fields{"Title": "Tetris", "Developer": "Alexey Pajitnov", "Year": "1984", "Cover": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Project(tt.item)
			if err != nil {
				t.Fatalf("Project() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Project() returned %d fields, want %d: %v", len(got), len(tt.want), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Project()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestProject_RejectsMismatchedVariant(t *testing.T) {
	item := Item{ID: 1, Kind: KindGame, Title: "Broken", Book: &BookDetails{}}
	if _, err := Project(item); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("Project() error = %v, want ErrInvalidRef", err)
	}

	if _, err := Project(Item{ID: 1, Title: "No kind"}); !errors.Is(err, ErrInvalidRef) {
		t.Errorf("Project() on unknown kind error = %v, want ErrInvalidRef", err)
	}
}

func TestItem_Creator(t *testing.T) {
	if got := NewFilm(1, "Alien", "1979", "", FilmDetails{Director: "Ridley Scott"}).Creator(); got != "Ridley Scott" {
		t.Errorf("Creator() = %q, want Ridley Scott", got)
	}
	if got := (Item{Kind: KindBook}).Creator(); got != "" {
		t.Errorf("Creator() without details = %q, want empty", got)
	}
}

func TestVector(t *testing.T) {
	v := Vector([]Tag{{ID: 1, Name: "scifi", Count: 3}, {ID: 2, Name: "dead", Count: 0}, {ID: 1, Name: "scifi", Count: 1}})
	if v[1] != 4 {
		t.Errorf("v[1] = %d, want 4", v[1])
	}
	if _, ok := v[2]; ok {
		t.Error("zero-count tags should not be present")
	}
	if v.Len() != 1 {
		t.Errorf("Len() = %d, want 1", v.Len())
	}
}
