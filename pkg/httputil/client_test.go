package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/mekko/pkg/cache"
)

var fastRetry = WithRetry(cache.RetryPolicy{Attempts: 3, Delay: time.Millisecond})

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Accept") != "text/csv" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		w.Write([]byte("category,series,value\nA,x,1\n"))
	}))
	defer srv.Close()

	store := cache.NewMemoryCache()
	c := NewClient(store, map[string]string{"Accept": "text/csv"}, fastRetry)
	ctx := context.Background()

	for range 2 {
		body, err := c.Fetch(ctx, srv.URL, false)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if string(body) != "category,series,value\nA,x,1\n" {
			t.Errorf("body = %q", body)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}

	if _, err := c.Fetch(ctx, srv.URL, true); err != nil {
		t.Fatalf("Fetch(refresh): %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("refresh should bypass cache, hits = %d", hits.Load())
	}
}

func TestFetchRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(nil, nil, fastRetry)
	body, err := c.Fetch(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "ok" || hits.Load() != 2 {
		t.Errorf("body = %q, hits = %d", body, hits.Load())
	}
}

func TestFetchStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		wantHits int32
	}{
		{"not found", http.StatusNotFound, cache.ErrNotFound, 1},
		{"forbidden", http.StatusForbidden, cache.ErrNetwork, 1},
		{"server error", http.StatusInternalServerError, cache.ErrNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient(nil, nil, fastRetry).Fetch(context.Background(), srv.URL, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if hits.Load() != tt.wantHits {
				t.Errorf("hits = %d, want %d", hits.Load(), tt.wantHits)
			}
		})
	}
}

func TestCheckStatus(t *testing.T) {
	if err := checkStatus(http.StatusOK); err != nil {
		t.Errorf("200: %v", err)
	}
	if !cache.IsRetryable(checkStatus(http.StatusTooManyRequests)) {
		t.Error("429 should be retryable")
	}
	if cache.IsRetryable(checkStatus(http.StatusBadRequest)) {
		t.Error("400 should not be retryable")
	}
}
