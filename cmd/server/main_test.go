package main

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NotFoundHandler(),
	}

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, server)
	}()

	// Give the listener a moment to come up, then signal termination.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestServeReportsListenError(t *testing.T) {
	server := &http.Server{
		Addr:    "256.256.256.256:0",
		Handler: http.NotFoundHandler(),
	}

	if err := serve(context.Background(), server); err == nil {
		t.Error("expected error for unusable listen address")
	}
}
