package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trendchart/internal/config"
	"trendchart/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:        "8080",
		Width:       960,
		Height:      500,
		Mode:        "daily",
		Environment: "test",
	}

	srv, err := server.NewServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	srv.HandleHealth(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		Port:           "0",
		Width:          960,
		Height:         500,
		Mode:           "daily",
		StorageMode:    config.StorageLocal,
		LocalOutputDir: t.TempDir(),
		DataFile:       "internal/fetchers/testdata/document.json",
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConfigLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Logf("Config load failed with the current environment: %v", err)
		return
	}
	if cfg.Port == "" {
		t.Error("Expected a default port")
	}
}
