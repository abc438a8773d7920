package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// TestNewClient tests client construction with various options.
func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient()

		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.maxRetries != 3 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 3)
		}
		if c.retryBackoff != time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, time.Second)
		}
		if c.userAgent != DefaultUserAgent {
			t.Errorf("userAgent = %q, want %q", c.userAgent, DefaultUserAgent)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
		if c.now == nil {
			t.Error("clock should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient(WithTimeout(5 * time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with retries option", func(t *testing.T) {
		c := NewClient(WithRetries(5, 2*time.Second))
		if c.maxRetries != 5 {
			t.Errorf("maxRetries = %d, want %d", c.maxRetries, 5)
		}
		if c.retryBackoff != 2*time.Second {
			t.Errorf("retryBackoff = %v, want %v", c.retryBackoff, 2*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient(WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})

	t.Run("nil logger keeps default", func(t *testing.T) {
		c := NewClient(WithLogger(nil))
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with custom HTTP client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		c := NewClient(WithHTTPClient(customClient))
		if c.httpClient != customClient {
			t.Error("custom HTTP client not set")
		}
	})

	t.Run("with user agent", func(t *testing.T) {
		c := NewClient(WithUserAgent("collector-test/1.0"))
		if c.userAgent != "collector-test/1.0" {
			t.Errorf("userAgent = %q, want %q", c.userAgent, "collector-test/1.0")
		}
	})
}

// TestAPIError tests the APIError type.
func TestAPIError(t *testing.T) {
	t.Run("Error method", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
		}
		expected := "itemdb api error 404: Not Found"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("IsRetryable", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{500, true},
			{502, true},
			{503, true},
			{429, true},
			{400, false},
			{404, false},
			{499, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			if got := err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() for status %d = %v, want %v", tt.code, got, tt.expected)
			}
		}
	})
}

// TestDoRequest tests a single GET.
func TestDoRequest(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("Accept header = %q, want %q", r.Header.Get("Accept"), "application/json")
			}
			if r.Header.Get("User-Agent") != "ua-test" {
				t.Errorf("User-Agent header = %q, want %q", r.Header.Get("User-Agent"), "ua-test")
			}
			w.Header().Set("X-Test", "yes")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		c := NewClient(WithUserAgent("ua-test"))
		resp, err := c.doRequest(context.Background(), server.URL+"/test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Body) != `{"status": "ok"}` {
			t.Errorf("body = %q, want %q", string(resp.Body), `{"status": "ok"}`)
		}
		if resp.Header.Get("X-Test") != "yes" {
			t.Errorf("X-Test header = %q, want %q", resp.Header.Get("X-Test"), "yes")
		}
	})

	t.Run("4xx error returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
		}))
		defer server.Close()

		c := NewClient()
		_, err := c.doRequest(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != 404 {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, 404)
		}
		if !strings.Contains(string(apiErr.Body), "not found") {
			t.Errorf("Body should contain 'not found', got %q", string(apiErr.Body))
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		c := NewClient()
		_, err := c.doRequest(ctx, server.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

// TestDoWithRetry tests retry behavior.
func TestDoWithRetry(t *testing.T) {
	t.Run("succeeds after 5xx", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewClient(WithRetries(3, time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls = %d, want 3", got)
		}
	})

	t.Run("does not retry 4xx", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := NewClient(WithRetries(3, time.Millisecond))
		if _, err := c.doWithRetry(context.Background(), server.URL); err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("calls = %d, want 1", got)
		}
	})

	t.Run("max retries exceeded", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewClient(WithRetries(2, time.Millisecond))
		_, err := c.doWithRetry(context.Background(), server.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "max retries exceeded") {
			t.Errorf("error = %q, want max retries exceeded", err.Error())
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected wrapped *APIError, got %T", err)
		}
		if got := calls.Load(); got != 3 {
			t.Errorf("calls = %d, want 3", got)
		}
	})

	t.Run("retries transport errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		addr := server.URL
		server.Close()

		c := NewClient(WithRetries(1, time.Millisecond), WithTimeout(time.Second))
		_, err := c.doWithRetry(context.Background(), addr)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "max retries exceeded") {
			t.Errorf("error = %q, want max retries exceeded", err.Error())
		}
	})
}
