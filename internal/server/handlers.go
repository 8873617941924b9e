package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trendchart/internal/charts"
	"trendchart/internal/config"
	"trendchart/internal/models"
	"trendchart/internal/reports"
	"trendchart/internal/storage"
)

// StateResponse describes the chart session
type StateResponse struct {
	HasData     bool     `json:"hasData"`
	Mode        string   `json:"mode"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Series      []string `json:"series"`
	Visible     []string `json:"visible"`
	Drawn       []string `json:"drawn"`
	Hidden      []string `json:"hidden"`
	YTicks      int      `json:"yTicks"`
	HoverLabels []string `json:"hoverLabels,omitempty"`
	Rebuilds    int      `json:"rebuilds"`
}

// state builds the session description; callers hold s.mu
func (s *Server) state() StateResponse {
	resp := StateResponse{
		HasData:  s.chart.HasData(),
		Mode:     string(s.chart.Mode()),
		Series:   models.Names(s.chart.Data()),
		Visible:  s.chart.Visible(),
		Rebuilds: s.chart.Rebuilds(),
	}
	resp.Width, resp.Height = s.box.Size()
	if scene := s.chart.Scene(); scene != nil {
		for _, l := range scene.Lines {
			resp.Drawn = append(resp.Drawn, l.Series)
		}
		for _, e := range scene.Legend {
			if e.Hidden {
				resp.Hidden = append(resp.Hidden, e.Name)
			}
		}
		resp.YTicks = len(scene.YAxis.Ticks)
		for _, l := range scene.HoverLabels {
			resp.HoverLabels = append(resp.HoverLabels, l.Text.Content)
		}
	}
	return resp
}

// HandleRoot serves the interactive chart page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var buf bytes.Buffer
	s.mu.Lock()
	err := s.Pages.IndexPage(&buf, s.chart.State(), s.chart.Scene(), s.pageInfo())
	s.mu.Unlock()
	if err != nil {
		s.log.Error("Failed to render page", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.Lock()
	hasData := s.chart.HasData()
	s.mu.Unlock()

	dataCheck := "ok"
	if !hasData {
		dataCheck = "no data"
	}
	storageCheck := "ok"
	if s.Storage == nil {
		storageCheck = "disabled"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"data":    dataCheck,
			"storage": storageCheck,
		},
	})
}

// HandleChartSVG serves the current render surface, hover labels included
func (s *Server) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	var buf bytes.Buffer
	s.mu.Lock()
	scene := s.chart.Scene()
	var err error
	if scene != nil {
		err = charts.WriteSVG(&buf, scene)
	}
	s.mu.Unlock()

	if scene == nil {
		writeError(w, http.StatusNotFound, "no chart data loaded")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// HandleChartPNG serves a static snapshot of the current render
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	var buf bytes.Buffer
	s.mu.Lock()
	scene := s.chart.Scene()
	var err error
	if scene != nil {
		err = charts.WritePNG(&buf, scene)
	}
	s.mu.Unlock()

	if scene == nil {
		writeError(w, http.StatusNotFound, "no chart data loaded")
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// HandleChartECharts serves the chart as an ECharts page
func (s *Server) HandleChartECharts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	var buf bytes.Buffer
	s.mu.Lock()
	hasData := s.chart.HasData()
	var err error
	if hasData {
		err = reports.EChartsPage(&buf, s.chart.State(), reports.EChartsOptions{Title: "Trend chart"})
	}
	s.mu.Unlock()

	if !hasData {
		writeError(w, http.StatusNotFound, "no chart data loaded")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleState returns the chart session as JSON
func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.Lock()
	resp := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// HandleLegendToggle handles a click on a legend entry
func (s *Server) HandleLegendToggle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.chart.HasData() {
		writeError(w, http.StatusConflict, "no chart data loaded")
		return
	}
	s.chart.Toggle(name)
	s.log.Debug("Legend toggled", map[string]interface{}{"name": name})
	s.respondState(w, r)
}

// HandleHover handles the pointer entering or leaving a point marker
func (s *Server) HandleHover(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	q := r.URL.Query()
	series := q.Get("series")
	index, err := strconv.Atoi(q.Get("index"))
	if series == "" || err != nil {
		writeError(w, http.StatusBadRequest, "series and a numeric index are required")
		return
	}
	ref := charts.PointRef{Series: series, Index: index}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ok bool
	switch strings.ToLower(q.Get("action")) {
	case "enter":
		ok = s.chart.HoverEnter(ref)
	case "exit":
		ok = s.chart.HoverExit(ref)
	default:
		writeError(w, http.StatusBadRequest, "action must be enter or exit")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "point is not drawn")
		return
	}
	s.respondState(w, r)
}

// HandleResize records a new container size and rebuilds the chart, possibly
// after the configured debounce delay
func (s *Server) HandleResize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	q := r.URL.Query()
	width, errW := strconv.ParseFloat(q.Get("width"), 64)
	height, errH := strconv.ParseFloat(q.Get("height"), 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		writeError(w, http.StatusBadRequest, "positive width and height are required")
		return
	}

	s.mu.Lock()
	s.box.SetSize(width, height)
	s.mu.Unlock()

	// Trigger takes s.mu itself, synchronously when there is no delay
	s.resize.Trigger()

	if s.Config.ResizeDebounce > 0 {
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"status": "scheduled",
			"delay":  s.Config.ResizeDebounce.String(),
		})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondState(w, r)
}

// HandleMode switches the chart to another mode of the loaded document
func (s *Server) HandleMode(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	mode, ok := lookupMode(r.URL.Query().Get("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be one of daily, weekly, hourly")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		writeError(w, http.StatusConflict, "no chart data loaded")
		return
	}
	if s.doc.Select(mode) == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("document has no %s series", mode))
		return
	}
	s.setDocument(s.doc, mode)
	s.respondState(w, r)
}

// HandleReload fetches the document again and replaces the chart data
func (s *Server) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := s.LoadDocument(r.Context()); err != nil {
		s.log.Error("Reload failed", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondState(w, r)
}

// HandleSnapshot stores the current chart in every format
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot storage is disabled")
		return
	}

	s.mu.Lock()
	files, err := s.Pages.GenerateSnapshot(s.chart.State(), s.chart.Scene(), s.pageInfo())
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	stored, err := reports.NewStorageOrchestrator(s.Storage).StoreAllFiles(r.Context(), files)
	if errors.Is(err, reports.ErrSnapshotExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		s.log.Error("Snapshot storage failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"folder": files.FolderPath,
		"files":  stored,
		"url":    "/files/" + files.FolderPath + "/" + reports.FileIndex,
	})
}

// HandleListSnapshots lists stored snapshot pages, newest first
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot storage is disabled")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
		if limit > 100 {
			limit = 100
		}
	}

	files, err := s.Storage.ListDir(r.Context(), "", true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var pages []string
	for i := len(files) - 1; i >= 0 && len(pages) < limit; i-- {
		if strings.HasSuffix(files[i], "/"+reports.FileIndex) {
			pages = append(pages, "/files/"+files[i])
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": pages,
		"count":     len(pages),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves stored snapshot files
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot storage is disabled")
		return
	}
	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" || strings.Contains(filePath, "..") {
		writeError(w, http.StatusBadRequest, "invalid file path")
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		s.log.Error("Failed to get file from storage", err, map[string]interface{}{"path": filePath})
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}

// respondState answers an event: browsers posting a form are sent back to
// the page, API clients get the new state. Callers hold s.mu.
func (s *Server) respondState(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) pageInfo() reports.PageInfo {
	return reports.PageInfo{
		Title:       "Trend chart",
		Version:     config.GetVersion(),
		GeneratedAt: time.Now(),
	}
}

func lookupMode(raw string) (models.Mode, bool) {
	for _, m := range models.Modes {
		if strings.EqualFold(raw, string(m)) {
			return m, true
		}
	}
	return "", false
}
