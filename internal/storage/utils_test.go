package storage

import (
	"context"
	"testing"
	"time"

	"trendchart/internal/config"
)

func TestSnapshotFolderPath(t *testing.T) {
	ts := time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC)
	want := "2024/03/07/Snapshot-2024-03-07-09-05-01"
	if got := SnapshotFolderPath(ts); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"chart.svg", "image/svg+xml"},
		{"chart.PNG", "image/png"},
		{"index.html", "text/html; charset=utf-8"},
		{"state.json", "application/json"},
		{"summary.md", "text/markdown"},
		{"blob", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := GetContentType(tt.filename); got != tt.expected {
			t.Errorf("GetContentType(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestNewStorageClient(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StorageMode: "local", LocalOutputDir: t.TempDir()}

	client, err := NewStorageClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Expected local client, got error: %v", err)
	}
	if _, ok := client.(*LocalStorageClient); !ok {
		t.Errorf("Expected *LocalStorageClient, got %T", client)
	}

	cfg.StorageMode = "ftp"
	if _, err := NewStorageClient(ctx, cfg); err == nil {
		t.Error("Expected error for unsupported storage mode")
	}

	cfg.StorageMode = "gcs"
	if _, err := NewStorageClient(ctx, cfg); err == nil {
		t.Error("Expected error for GCS without a bucket")
	}
}
