// Package main provides the trendchart command line: one-shot renders of a
// chart document and the interactive chart service.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trendchart/internal/charts"
	"trendchart/internal/config"
	"trendchart/internal/fetchers"
	"trendchart/internal/logger"
	"trendchart/internal/models"
	"trendchart/internal/reports"
	"trendchart/internal/server"
	"trendchart/internal/view"
)

// Output formats of the render command
const (
	formatSVG      = "svg"
	formatPNG      = "png"
	formatHTML     = "html"
	formatECharts  = "echarts"
	formatMarkdown = "markdown"
)

type renderOptions struct {
	data   string
	mode   string
	width  float64
	height float64
	toggle []string
	format string
	out    string
}

type serveOptions struct {
	port string
	data string
	mode string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "trendchart",
		Short: "Render multi-series time charts with an interactive legend",
		Long: `trendchart draws a set of named time series as a line chart with a
clickable legend and point hover labels. Use "render" for a one-shot file
and "serve" to run the interactive chart service.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logger.Configure(logLevel, "text")
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newRenderCmd(), newServeCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart document to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Chart document: file path or http(s) URL")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(models.DefaultMode), "Mode: daily, weekly, hourly")
	cmd.Flags().Float64Var(&opts.width, "width", 960, "Container width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 500, "Container height in pixels")
	cmd.Flags().StringSliceVarP(&opts.toggle, "toggle", "t", nil, "Legend entries to click, in order")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "Output format: svg, png, html, echarts, markdown")
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "Output file path (default: stdout)")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runRender(ctx context.Context, opts *renderOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %vx%v: width and height must be positive", opts.width, opts.height)
	}
	format := strings.ToLower(opts.format)
	switch format {
	case formatSVG, formatPNG, formatHTML, formatECharts, formatMarkdown:
	default:
		return fmt.Errorf("invalid format: %s (must be svg, png, html, echarts or markdown)", opts.format)
	}

	doc, err := fetchers.NewDocumentFetcher().Load(ctx, opts.data)
	if err != nil {
		return err
	}
	mode := models.ParseMode(opts.mode)
	series := doc.Select(mode)
	if series == nil {
		return fmt.Errorf("document has no %s series", mode)
	}

	chart := view.New(&view.FixedContainer{Width: opts.width, Height: opts.height},
		view.WithLogger(logger.GetGlobalLogger().WithComponent("render")))
	chart.SetData(series, mode)
	for _, name := range opts.toggle {
		chart.Toggle(strings.TrimSpace(name))
	}

	var buf bytes.Buffer
	switch format {
	case formatSVG:
		err = charts.WriteSVG(&buf, chart.Scene())
	case formatPNG:
		err = charts.WritePNG(&buf, chart.Scene())
	case formatECharts:
		err = reports.EChartsPage(&buf, chart.State(), reports.EChartsOptions{Title: "Trend chart"})
	case formatMarkdown:
		buf.WriteString(reports.NewSummaryBuilder().Markdown(chart.State()))
	case formatHTML:
		var pages *reports.PageBuilder
		if pages, err = reports.NewPageBuilder(); err == nil {
			err = pages.IndexPage(&buf, chart.State(), chart.Scene(), reports.PageInfo{
				Title:       "Trend chart",
				Version:     config.GetVersion(),
				GeneratedAt: time.Now(),
			})
		}
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if opts.out == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Chart written", map[string]interface{}{
		"path":   opts.out,
		"format": format,
		"bytes":  buf.Len(),
	})
	return nil
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive chart service",
		Long: `serve reads its configuration from the environment (PORT, CHART_DATA_URL,
CHART_DATA_FILE, CHART_MODE, STORAGE_MODE, ...). Flags override the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				logger.Configure(cfg.LogLevel, cfg.LogFormat)
			}
			applyServeOptions(cfg, opts, cmd)
			return server.Run(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Listen port")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Chart document: file path or http(s) URL")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Initial mode: daily, weekly, hourly")
	return cmd
}

// applyServeOptions copies explicitly set flags over the loaded configuration
func applyServeOptions(cfg *config.Config, opts *serveOptions, cmd *cobra.Command) {
	if cmd.Flags().Changed("port") {
		cfg.Port = opts.port
	}
	if cmd.Flags().Changed("data") {
		if fetchers.IsURL(opts.data) {
			cfg.DataURL, cfg.DataFile = opts.data, ""
		} else {
			cfg.DataURL, cfg.DataFile = "", opts.data
		}
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = opts.mode
	}
}
