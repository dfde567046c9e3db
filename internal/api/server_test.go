package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/ponto/internal/config"
	"github.com/mcoot/ponto/internal/testutil"
)

func testHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestServerRunsUntilCancelled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := NewServer(handler, "127.0.0.1:0", testHTTPConfig(), testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}

	_, err = http.Get("http://" + srv.Addr() + "/health")
	assert.Error(t, err)
}

func TestServerRunFailsOnBusyAddress(t *testing.T) {
	handler := http.NotFoundHandler()
	first := NewServer(handler, "127.0.0.1:0", testHTTPConfig(), testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- first.Run(ctx)
	}()
	<-first.Ready()

	second := NewServer(handler, first.Addr(), testHTTPConfig(), testutil.NopLogger())
	err := second.Run(context.Background())
	assert.ErrorContains(t, err, "listening on")

	cancel()
	assert.NoError(t, <-done)
}
