package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"trendchart/internal/models"
)

// Storage modes
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the trend chart service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// Data source: a URL is preferred over a file when both are set
	DataURL  string `env:"CHART_DATA_URL"`
	DataFile string `env:"CHART_DATA_FILE"`

	// Initial chart session
	Mode           string        `env:"CHART_MODE,default=daily"`
	Width          float64       `env:"CHART_WIDTH,default=960"`
	Height         float64       `env:"CHART_HEIGHT,default=500"`
	ResizeDebounce time.Duration `env:"RESIZE_DEBOUNCE,default=0s"`

	// Snapshot storage
	StorageMode    string `env:"STORAGE_MODE,default=local"`
	LocalOutputDir string `env:"LOCAL_OUTPUT_DIR,default=./output"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check on its own
func (c *Config) Validate() error {
	switch strings.ToLower(c.StorageMode) {
	case StorageLocal:
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_MODE is %q", StorageGCS)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("RESIZE_DEBOUNCE must not be negative, got %s", c.ResizeDebounce)
	}
	return nil
}

// ChartMode returns the configured initial mode
func (c *Config) ChartMode() models.Mode {
	return models.ParseMode(c.Mode)
}

// DataSource returns the configured document location, or "" when none is set
func (c *Config) DataSource() string {
	if c.DataURL != "" {
		return c.DataURL
	}
	return c.DataFile
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
