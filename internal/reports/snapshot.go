package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"trendchart/internal/charts"
	"trendchart/internal/logger"
	"trendchart/internal/models"
	"trendchart/internal/storage"
)

// Snapshot file names
const (
	FileIndex   = "index.html"
	FileSVG     = "chart.svg"
	FilePNG     = "chart.png"
	FileECharts = "echarts.html"
	FileSummary = "summary.md"
	FileState   = "state.json"
)

// ErrSnapshotExists is returned when a snapshot folder is already stored
var ErrSnapshotExists = errors.New("snapshot already exists")

// GeneratedFiles holds every file of one snapshot, keyed by file name
type GeneratedFiles struct {
	FolderPath string
	Files      map[string][]byte
}

// Names returns the file names in sorted order
func (g *GeneratedFiles) Names() []string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SnapshotState is the JSON description stored next to the rendered files
type SnapshotState struct {
	Mode      string    `json:"mode"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Series    []string  `json:"series"`
	Drawn     []string  `json:"drawn"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerateSnapshot renders the chart in every supported format. A PNG that
// cannot be drawn (for example a single-date series) is left out of the
// snapshot rather than failing it.
func (p *PageBuilder) GenerateSnapshot(st charts.State, scene *charts.Scene, info PageInfo) (*GeneratedFiles, error) {
	if scene == nil {
		return nil, fmt.Errorf("no chart to snapshot")
	}
	if info.GeneratedAt.IsZero() {
		info.GeneratedAt = time.Now()
	}
	files := &GeneratedFiles{
		FolderPath: storage.SnapshotFolderPath(info.GeneratedAt),
		Files:      make(map[string][]byte),
	}
	log := logger.GetGlobalLogger().WithComponent("snapshot")

	var buf bytes.Buffer
	if err := p.IndexPage(&buf, st, scene, info); err != nil {
		return nil, err
	}
	files.Files[FileIndex] = copyBytes(&buf)

	if err := charts.WriteSVG(&buf, scene); err != nil {
		return nil, fmt.Errorf("failed to encode svg: %w", err)
	}
	files.Files[FileSVG] = copyBytes(&buf)

	if err := charts.WritePNG(&buf, scene); err != nil {
		log.Warn("Skipping PNG snapshot", map[string]interface{}{"reason": err.Error()})
		buf.Reset()
	} else {
		files.Files[FilePNG] = copyBytes(&buf)
	}

	if err := EChartsPage(&buf, st, EChartsOptions{Title: info.Title}); err != nil {
		return nil, err
	}
	files.Files[FileECharts] = copyBytes(&buf)

	files.Files[FileSummary] = []byte(p.summary.Markdown(st))

	state := SnapshotState{
		Mode:      string(st.Mode),
		Width:     st.Viewport.Width,
		Height:    st.Viewport.Height,
		Series:    models.Names(st.Data),
		CreatedAt: info.GeneratedAt.UTC(),
	}
	for _, l := range scene.Lines {
		state.Drawn = append(state.Drawn, l.Series)
	}
	stateJSON, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot state: %w", err)
	}
	files.Files[FileState] = stateJSON

	return files, nil
}

func copyBytes(buf *bytes.Buffer) []byte {
	out := append([]byte(nil), buf.Bytes()...)
	buf.Reset()
	return out
}

// StorageOrchestrator writes generated snapshots to a storage backend
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: client,
		log:     logger.GetGlobalLogger().WithComponent("storage"),
	}
}

// StoreAllFiles stores every file of a snapshot under its folder path and
// returns the stored paths. An existing snapshot is never overwritten.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) ([]string, error) {
	exists, err := so.storage.FileExists(ctx, files.FolderPath+"/"+FileIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot folder: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotExists, files.FolderPath)
	}
	if err := so.storage.CreateDir(ctx, files.FolderPath); err != nil {
		return nil, fmt.Errorf("failed to create snapshot folder: %w", err)
	}

	var stored []string
	for _, name := range files.Names() {
		p := files.FolderPath + "/" + name
		if err := so.storage.StoreFile(ctx, p, files.Files[name]); err != nil {
			return stored, fmt.Errorf("failed to store %s: %w", name, err)
		}
		stored = append(stored, p)
	}

	so.log.Info("Snapshot stored", map[string]interface{}{
		"folder": files.FolderPath,
		"files":  len(stored),
	})
	return stored, nil
}
