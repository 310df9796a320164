// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/curio/internal/supervisor/services"
)

// fakeService fails its first failures runs, then blocks until canceled.
type fakeService struct {
	name     string
	failures int32
	starts   atomic.Int32
}

func (f *fakeService) Serve(ctx context.Context) error {
	if n := f.starts.Add(1); n <= f.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) String() string { return f.name }

var _ suture.Service = (*fakeService)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.Root() == nil {
		t.Fatal("root supervisor should not be nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
	}

	tree, _ = NewSupervisorTree(quietLogger(), TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
	if tree.config.FailureThreshold != 2 || tree.config.ShutdownTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", tree.config)
	}
	if tree.config.FailureDecay != 30 {
		t.Errorf("FailureDecay = %v, want 30", tree.config.FailureDecay)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	data := &fakeService{name: "data"}
	api := &fakeService{name: "api"}
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return data.starts.Load() >= 1 && api.starts.Load() >= 1 })
	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	failing := &fakeService{name: "failing", failures: 2}
	stable := &fakeService{name: "stable"}
	tree.AddDataService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return failing.starts.Load() >= 3 })
	if stable.starts.Load() != 1 {
		t.Errorf("stable service restarted: %d starts", stable.starts.Load())
	}

	cancel()
	<-done
}

func TestSupervisorTree_RealServicesShutDown(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, time.Second, zerolog.Nop()))
	tree.AddDataService(services.NewMaintenanceService(services.MaintenanceServiceConfig{
		Interval: 10 * time.Millisecond,
	}, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not shut down in time")
	}
}
