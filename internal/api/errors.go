// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/moderation"
	"github.com/tomtom215/curio/internal/recommend"
	"github.com/tomtom215/curio/internal/validation"
)

// writeError maps a domain error onto an HTTP status and error code.
//
//	field validation / invalid parameters -> 400 VALIDATION_ERROR
//	invalid ref or kind                   -> 400 BAD_REQUEST
//	not found                             -> 404 NOT_FOUND
//	flagged tags                          -> 422 CONTENT_FLAGGED
//	deadline exceeded                     -> 504 TIMEOUT
//	store unavailable                     -> 503 SERVICE_UNAVAILABLE
//	anything else                         -> 500 INTERNAL_ERROR
func writeError(rw *ResponseWriter, err error) {
	var verr *validation.RequestValidationError

	switch {
	case errors.As(err, &verr):
		rw.ValidationError(verr)
	case errors.Is(err, recommend.ErrInvalidParameters):
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
	case errors.Is(err, catalog.ErrInvalidRef):
		rw.BadRequest(err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, moderation.ErrFlagged):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeFlagged, "Submission rejected by moderation")
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(rw.r.Context()).Warn().Err(err).Msg("Request deadline exceeded")
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out")
	case errors.Is(err, catalog.ErrStoreUnavailable):
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Catalog store unavailable")
		rw.ServiceUnavailable("Catalog store unavailable")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Unhandled API error")
		rw.InternalError("Internal server error")
	}
}
