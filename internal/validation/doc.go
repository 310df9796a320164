// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages come from
// the query or json tag so clients see the parameter names they sent:
//
//	type GraphParams struct {
//	    Threshold float64 `query:"weighting" validate:"gte=0,lte=10"`
//	    TopN      int     `query:"top_n" validate:"gte=1,lte=10"`
//	}
//
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    // verr.Error() == "top_n must be less than or equal to 10"
//	}
//
// Failures convert to the API error envelope with code VALIDATION_ERROR
// through ToAPIError.
package validation
