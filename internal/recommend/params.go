// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package recommend

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/curio/internal/validation"
)

const (
	// MinTopN and MaxTopN bound Params.TopN.
	MinTopN = 1
	MaxTopN = 10
)

// ErrInvalidParameters is returned when Params fail validation.
var ErrInvalidParameters = errors.New("invalid parameters")

// Params are the user-supplied knobs of one graph request.
type Params struct {
	// Threshold filters both candidates and edges, on the 0-10 scale.
	Threshold float64 `query:"weighting" validate:"gte=0,lte=10"`

	// TopN is how many candidates become graph nodes besides the seed.
	TopN int `query:"top_n" validate:"gte=1,lte=10"`
}

// Validate returns an error wrapping both ErrInvalidParameters and a
// *validation.RequestValidationError when p is out of range.
func (p Params) Validate() error {
	if math.IsNaN(p.Threshold) {
		return fmt.Errorf("%w: weighting must be a number", ErrInvalidParameters)
	}
	if verr := validation.ValidateStruct(&p); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, verr)
	}
	return nil
}
