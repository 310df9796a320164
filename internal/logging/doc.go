// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package logging provides zerolog-based structured logging for Curio.
//
// JSON output is the production default; console output is available for
// development. Request-scoped loggers carry the request id set by the API
// middleware, and an slog adapter lets the suture supervisor log through the
// same backend.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Entity extraction failed")
//
// Components derive their own logger once and keep it:
//
//	logger := logging.WithComponent("database")
//	logger.Debug().Str("path", path).Msg("Opening catalog")
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
