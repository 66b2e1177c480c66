package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
)

// TestClientGetPage tests single page fetching.
func TestClientGetPage(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses a page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><h1>Hello</h1></body></html>`))
		}))
		defer server.Close()

		client := NewClient(WithDelay(0))
		doc, err := client.GetPage(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		h1, ok := doc.SelectOne("h1")
		if !ok {
			t.Fatal("expected h1 element in parsed document")
		}
		if h1.Text() != "Hello" {
			t.Errorf("expected h1 text 'Hello', got %q", h1.Text())
		}
	})

	t.Run("non-200 status returns HTTPError with the code", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(WithDelay(0))
		_, err := client.GetPage(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected error for 503 response")
		}

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *HTTPError, got %T: %v", err, err)
		}
		if httpErr.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", httpErr.StatusCode)
		}
	})

	t.Run("counts every fetch including failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			if calls == 2 {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		client := NewClient(WithDelay(0))
		ctx := context.Background()

		if _, err := client.GetPage(ctx, server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := client.GetPage(ctx, server.URL); err == nil {
			t.Fatal("expected error on second fetch")
		}

		if got := client.RequestCount(); got != 2 {
			t.Errorf("expected request count 2, got %d", got)
		}
	})

	t.Run("politeness delay applies before the first fetch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		const delay = 50 * time.Millisecond
		client := NewClient(WithDelay(delay))

		start := time.Now()
		if _, err := client.GetPage(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < delay {
			t.Errorf("first fetch returned after %v, expected at least %v", elapsed, delay)
		}
	})

	t.Run("cancelled context interrupts the politeness wait", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		client := NewClient(WithDelay(time.Hour))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := client.GetPage(ctx, server.URL); err == nil {
			t.Fatal("expected error from cancelled context")
		}
	})

	t.Run("decodes brotli encoded responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Encoding", "br")
			bw := brotli.NewWriter(w)
			_, _ = bw.Write([]byte(`<html><body><h1>Compressed</h1></body></html>`))
			_ = bw.Close()
		}))
		defer server.Close()

		client := NewClient(WithDelay(0))
		doc, err := client.GetPage(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		h1, ok := doc.SelectOne("h1")
		if !ok {
			t.Fatal("expected h1 element in decoded document")
		}
		if h1.Text() != "Compressed" {
			t.Errorf("expected h1 text 'Compressed', got %q", h1.Text())
		}
	})
}
