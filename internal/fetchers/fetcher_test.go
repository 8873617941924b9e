package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"trendchart/internal/models"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "document.json"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return raw
}

func TestNewDocumentFetcher(t *testing.T) {
	f := NewDocumentFetcher()
	if f.client == nil {
		t.Fatal("HTTP client not initialized")
	}
	if f.client.GetClient().Timeout != defaultTimeout {
		t.Errorf("Expected %s timeout, got %s", defaultTimeout, f.client.GetClient().Timeout)
	}
	if f.client.RetryCount != defaultRetryCount {
		t.Errorf("Expected %d retries, got %d", defaultRetryCount, f.client.RetryCount)
	}
}

func TestFetch(t *testing.T) {
	body := readFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected JSON accept header, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer server.Close()

	doc, err := NewDocumentFetcher().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	daily := doc.Select(models.ModeDaily)
	if len(daily) != 2 || daily[0].Name != "Spend" {
		t.Fatalf("Unexpected daily series %+v", daily)
	}
	if daily[0].Values[1].Value != 98 {
		t.Errorf("Expected string value to decode as 98, got %v", daily[0].Values[1].Value)
	}
	if len(doc.AvailableModes()) != 3 {
		t.Errorf("Expected 3 modes, got %v", doc.AvailableModes())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"not found", http.StatusNotFound, "{}", "status 404"},
		{"server error", http.StatusBadGateway, "", "status 502"},
		{"bad json", http.StatusOK, "{daily:", "failed to parse chart document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := NewDocumentFetcher(WithRetries(1, time.Millisecond))
			_, err := f.Fetch(context.Background(), server.URL)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
			if tt.status >= 500 && atomic.LoadInt32(&calls) != 2 {
				t.Errorf("Expected one retry on %d, got %d calls", tt.status, calls)
			}
		})
	}
}

func TestFetchContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(readFixture(t))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDocumentFetcher(WithRetries(0, 0)).Fetch(ctx, server.URL)
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("Expected context cancellation error, got: %v", err)
	}
}

func TestLoadDispatch(t *testing.T) {
	f := NewDocumentFetcher()

	doc, err := f.Load(context.Background(), filepath.Join("testdata", "document.json"))
	if err != nil {
		t.Fatalf("Load from file failed: %v", err)
	}
	if got := doc.Select(models.ModeHourly); len(got) != 1 || got[0].Name != "Clicks" {
		t.Errorf("Unexpected hourly series %+v", got)
	}

	if _, err := f.Load(context.Background(), ""); err == nil {
		t.Error("Expected error for empty source")
	}
	if _, err := f.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/data.json", true},
		{"HTTP://example.com", true},
		{"./data.json", false},
		{"/var/data/http.json", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
