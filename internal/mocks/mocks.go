// Package mocks provides in-memory stand-ins for the chart service's
// document source and snapshot storage.
package mocks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"trendchart/internal/models"
	"trendchart/internal/storage"
)

// DocumentLoader serves a fixed document and counts calls
type DocumentLoader struct {
	mu      sync.Mutex
	doc     models.Document
	err     error
	calls   int
	sources []string
}

// NewDocumentLoader creates a loader that always returns doc
func NewDocumentLoader(doc models.Document) *DocumentLoader {
	return &DocumentLoader{doc: doc}
}

// LoadDocumentFile reads a mock document from dir/name
func LoadDocumentFile(dir, name string) (models.Document, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read mock document: %w", err)
	}
	return models.ParseDocument(data)
}

// Load implements the server's document loader
func (l *DocumentLoader) Load(ctx context.Context, source string) (models.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	l.sources = append(l.sources, source)
	if l.err != nil {
		return nil, l.err
	}
	return l.doc, nil
}

// SetDocument changes the document returned by later loads
func (l *DocumentLoader) SetDocument(doc models.Document) {
	l.mu.Lock()
	l.doc = doc
	l.mu.Unlock()
}

// SetError makes later loads fail with err; nil restores success
func (l *DocumentLoader) SetError(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Calls returns how many times Load was called
func (l *DocumentLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// Sources returns the sources passed to Load, in call order
func (l *DocumentLoader) Sources() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sources...)
}

// Storage is an in-memory storage.StorageClient
type Storage struct {
	mu     sync.Mutex
	files  map[string][]byte
	closed bool
}

// NewStorage creates an empty in-memory store
func NewStorage() *Storage {
	return &Storage{files: make(map[string][]byte)}
}

func (s *Storage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Closed reports whether Close was called
func (s *Storage) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Storage) CreateDir(ctx context.Context, dirPath string) error {
	return nil
}

func (s *Storage) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[clean(filePath)] = append([]byte(nil), fileData...)
	return nil
}

func (s *Storage) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, storage.ErrNotFound)
	}
	return data, nil
}

func (s *Storage) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := clean(dirPath)
	if prefix != "" {
		prefix += "/"
	}
	var out []string
	for name := range s.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !recursive && strings.Contains(strings.TrimPrefix(name, prefix), "/") {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Storage) FileExists(ctx context.Context, filePath string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[clean(filePath)]
	return ok, nil
}

func clean(p string) string {
	return strings.Trim(filepath.ToSlash(p), "/")
}

var _ storage.StorageClient = (*Storage)(nil)
