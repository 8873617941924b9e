package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"trendchart/internal/config"
	"trendchart/internal/logger"
	"trendchart/internal/models"
	"trendchart/internal/reports"
	"trendchart/internal/storage"
	"trendchart/internal/view"
)

// DocumentLoader loads the source document from a URL or file
type DocumentLoader interface {
	Load(ctx context.Context, source string) (models.Document, error)
}

// Server owns one chart session and exposes its events over HTTP.
// Every event takes mu, so events run one at a time in arrival order and
// each rebuild finishes before the next event is handled.
type Server struct {
	Config  *config.Config
	Loader  DocumentLoader
	Storage storage.StorageClient
	Pages   *reports.PageBuilder

	log *logger.Logger

	mu     sync.Mutex
	box    *view.FixedContainer
	chart  *view.Chart
	doc    models.Document
	resize *view.Debouncer
}

// NewServer creates a new server instance. Storage may be nil, which
// disables snapshots and the file proxy.
func NewServer(cfg *config.Config, loader DocumentLoader, store storage.StorageClient) (*Server, error) {
	pages, err := reports.NewPageBuilder()
	if err != nil {
		return nil, err
	}
	session := logger.GetGlobalLogger().WithFields(map[string]interface{}{
		"source": cfg.DataSource(),
	})
	box := &view.FixedContainer{Width: cfg.Width, Height: cfg.Height}

	s := &Server{
		Config:  cfg,
		Loader:  loader,
		Storage: store,
		Pages:   pages,
		log:     session.WithComponent("server"),
		box:     box,
		chart:   view.New(box, view.WithLogger(session.WithComponent("view"))),
	}
	s.resize = view.NewDebouncer(cfg.ResizeDebounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.chart.Resize()
	})
	return s, nil
}

// LoadDocument fetches the configured document and hands the configured
// mode's series to the chart
func (s *Server) LoadDocument(ctx context.Context) error {
	source := s.Config.DataSource()
	if source == "" {
		return fmt.Errorf("no chart data source configured")
	}
	if s.Loader == nil {
		return fmt.Errorf("no document loader configured")
	}
	doc, err := s.Loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load chart data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.chart.Mode()
	if !s.chart.HasData() {
		mode = s.Config.ChartMode()
	}
	s.setDocument(doc, mode)
	return nil
}

// SetDocument replaces the document and selects mode from it
func (s *Server) SetDocument(doc models.Document, mode models.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDocument(doc, mode)
}

func (s *Server) setDocument(doc models.Document, mode models.Mode) {
	s.doc = doc
	s.chart.SetData(doc.Select(mode), mode)
	s.log.Info("Chart data replaced", map[string]interface{}{
		"mode":   string(mode),
		"series": len(doc.Select(mode)),
	})
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/chart.svg", s.HandleChartSVG)
	mux.HandleFunc("/chart.png", s.HandleChartPNG)
	mux.HandleFunc("/chart/echarts", s.HandleChartECharts)
	mux.HandleFunc("/state", s.HandleState)
	mux.HandleFunc("/legend/toggle", s.HandleLegendToggle)
	mux.HandleFunc("/hover", s.HandleHover)
	mux.HandleFunc("/resize", s.HandleResize)
	mux.HandleFunc("/mode", s.HandleMode)
	mux.HandleFunc("/reload", s.HandleReload)
	mux.HandleFunc("/snapshot", s.HandleSnapshot)
	mux.HandleFunc("/snapshots", s.HandleListSnapshots)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	// Root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	s.resize.Stop()
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
