// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package catalog

// Fields is the flat display projection of an item. Key names are fixed per
// kind and match what the graph front end renders.
type Fields map[string]string

// Display field names.
const (
	FieldTitle             = "Title"
	FieldAuthor            = "Author"
	FieldDirector          = "Director"
	FieldDeveloper         = "Developer"
	FieldYear              = "Year"
	FieldPublisher         = "Publisher"
	FieldProductionCompany = "Production Company"
	FieldCover             = "Cover"
)

// Project maps an item to its kind-specific display fields.
func Project(it Item) (Fields, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}

	switch it.Kind {
	case KindBook:
		return Fields{
			FieldTitle:     it.Title,
			FieldAuthor:    it.Book.Author,
			FieldYear:      it.Year,
			FieldPublisher: it.Book.Publisher,
			FieldCover:     it.Cover,
		}, nil
	case KindFilm:
		return Fields{
			FieldTitle:             it.Title,
			FieldDirector:          it.Film.Director,
			FieldYear:              it.Year,
			FieldProductionCompany: it.Film.ProductionCompany,
			FieldCover:             it.Cover,
		}, nil
	case KindGame:
		return Fields{
			FieldTitle:     it.Title,
			FieldDeveloper: it.Game.Developer,
			FieldYear:      it.Year,
			FieldCover:     it.Cover,
		}, nil
	default:
		// unreachable: Validate rejects unknown kinds
		return nil, ErrInvalidRef
	}
}
