package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newLocal(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "output"))
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	return client
}

func TestNewLocalStorageClient(t *testing.T) {
	client := newLocal(t)
	defer client.Close()

	if _, err := os.Stat(client.BaseDir()); err != nil {
		t.Errorf("Expected base directory to exist: %v", err)
	}
	if _, err := NewLocalStorageClient(""); err == nil {
		t.Error("Expected error for empty base directory")
	}
}

func TestLocalStoreAndGet(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)

	if err := client.StoreFile(ctx, "2024/01/02/Snapshot/chart.svg", []byte("<svg/>")); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}
	data, err := client.GetFile(ctx, "2024/01/02/Snapshot/chart.svg")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Expected stored content, got %q", data)
	}

	_, err = client.GetFile(ctx, "missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalPathsStayInsideBaseDir(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)

	if err := client.StoreFile(ctx, "../../escape.txt", []byte("x")); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(client.BaseDir(), "escape.txt")); err != nil {
		t.Errorf("Expected file kept inside base directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(client.BaseDir()), "escape.txt")); err == nil {
		t.Error("Expected no file outside base directory")
	}
}

func TestLocalListDir(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)
	for _, p := range []string{"a/index.html", "a/chart.png", "a/b/chart.svg", "top.json"} {
		if err := client.StoreFile(ctx, p, []byte("x")); err != nil {
			t.Fatalf("StoreFile(%s) failed: %v", p, err)
		}
	}

	tests := []struct {
		dir       string
		recursive bool
		want      []string
	}{
		{"a", false, []string{"a/chart.png", "a/index.html"}},
		{"a", true, []string{"a/b/chart.svg", "a/chart.png", "a/index.html"}},
		{"", false, []string{"top.json"}},
		{"missing", true, nil},
	}
	for _, tt := range tests {
		got, err := client.ListDir(ctx, tt.dir, tt.recursive)
		if err != nil {
			t.Errorf("ListDir(%q) failed: %v", tt.dir, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ListDir(%q, %v) = %v, want %v", tt.dir, tt.recursive, got, tt.want)
		}
	}
}

func TestLocalFileExistsAndCreateDir(t *testing.T) {
	ctx := context.Background()
	client := newLocal(t)

	if err := client.CreateDir(ctx, "snapshots/2024"); err != nil {
		t.Fatalf("CreateDir failed: %v", err)
	}
	if ok, err := client.FileExists(ctx, "snapshots/2024"); err != nil || ok {
		t.Errorf("Expected directory not to count as a file, got %v %v", ok, err)
	}
	client.StoreFile(ctx, "snapshots/2024/chart.png", []byte("png"))
	if ok, err := client.FileExists(ctx, "snapshots/2024/chart.png"); err != nil || !ok {
		t.Errorf("Expected stored file to exist, got %v %v", ok, err)
	}
	if ok, _ := client.FileExists(ctx, "nope.png"); ok {
		t.Error("Expected missing file not to exist")
	}
}
