// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

/*
Package supervisor runs the long-lived parts of the Curio server under a
suture v4 supervision tree.

	curio
	├── data-layer
	│   └── MaintenanceService (entity warm-up, DuckDB checkpoint,
	│                           badger GC, cache expiry)
	└── api-layer
	    └── HTTPServerService

Each layer is its own supervisor with independent failure counting, so a
maintenance task that keeps failing is backed off without restarting the
HTTP server. Supervisor events are logged through sutureslog, which takes
the slog adapter of the zerolog logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	tree.AddDataService(services.NewMaintenanceService(maintenanceCfg, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

DuckDB and the prose model are libraries, not services, and are not
supervised; their lifetime is the process.

Restart behavior follows TreeConfig: failures decay over FailureDecay
seconds and once FailureThreshold is exceeded restarts wait FailureBackoff.
UnstoppedServiceReport lists services that ignored cancellation longer than
ShutdownTimeout.
*/
package supervisor
