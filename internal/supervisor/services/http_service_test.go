// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown, unless listenErr is set.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	started     chan struct{}
	stopped     chan struct{}
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stopped)
	}
	return f.shutdownErr
}

func (f *fakeHTTPServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService_Defaults(t *testing.T) {
	srv := newFakeHTTPServer()

	svc := NewHTTPServerService(srv, 0, zerolog.Nop())
	assert.Equal(t, 10*time.Second, svc.shutdownTimeout)
	assert.Equal(t, "http-server", svc.String())

	svc = NewHTTPServerService(srv, -time.Second, zerolog.Nop())
	assert.Equal(t, 10*time.Second, svc.shutdownTimeout)

	svc = NewHTTPServerService(srv, 3*time.Second, zerolog.Nop())
	assert.Equal(t, 3*time.Second, svc.shutdownTimeout)
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	srv := newFakeHTTPServer()
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	srv.waitStarted(t)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.Equal(t, int32(1), srv.listens.Load())
	assert.Equal(t, int32(1), srv.shutdowns.Load())
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	bindErr := errors.New("bind: address already in use")
	srv := newFakeHTTPServer()
	srv.listenErr = bindErr

	err := NewHTTPServerService(srv, time.Second, zerolog.Nop()).Serve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, bindErr)
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	shutdownErr := errors.New("connections did not drain")
	srv := newFakeHTTPServer()
	srv.shutdownErr = shutdownErr
	svc := NewHTTPServerService(srv, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	srv.waitStarted(t)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, shutdownErr)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	srv := newFakeHTTPServer()
	sup := suture.New("test", suture.Spec{FailureBackoff: 10 * time.Millisecond, Timeout: 2 * time.Second})
	sup.Add(NewHTTPServerService(srv, time.Second, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)
	srv.waitStarted(t)

	cancel()
	<-done
	assert.GreaterOrEqual(t, srv.shutdowns.Load(), int32(1))
}
