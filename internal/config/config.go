// Package config loads optional JSON configuration for rendering, output
// placement and the dashboard server. All fields are pointers so a partial
// config file only overrides what it names; the Get* accessors supply
// defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
)

// Config is the root configuration. The schema is shared by the CLI flags
// and the config file, so the same JSON works for one-off runs and for the
// dashboard server.
type Config struct {
	// Rendering params
	Theme            *string  `json:"theme,omitempty"`
	PanelWidth       *int     `json:"panel_width,omitempty"`
	PanelHeight      *int     `json:"panel_height,omitempty"`
	AssetsHost       *string  `json:"assets_host,omitempty"`
	PNGPanelWidthIn  *float64 `json:"png_panel_width_in,omitempty"`
	PNGPanelHeightIn *float64 `json:"png_panel_height_in,omitempty"`

	// Output params
	OutputDir   *string `json:"output_dir,omitempty"`
	CatalogPath *string `json:"catalog_path,omitempty"`

	// Server params
	ListenAddr *string `json:"listen_addr,omitempty"`
}

// Empty returns a Config with all fields set to nil, so every accessor
// falls back to its default.
func Empty() *Config {
	return &Config{}
}

// Load loads a Config from a JSON file. The file must have a .json
// extension and stay under the max file size. Fields omitted from the JSON
// keep their defaults, so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.PanelWidth != nil && *c.PanelWidth <= 0 {
		return fmt.Errorf("panel_width must be positive, got %d", *c.PanelWidth)
	}
	if c.PanelHeight != nil && *c.PanelHeight <= 0 {
		return fmt.Errorf("panel_height must be positive, got %d", *c.PanelHeight)
	}
	if c.PNGPanelWidthIn != nil && *c.PNGPanelWidthIn <= 0 {
		return fmt.Errorf("png_panel_width_in must be positive, got %f", *c.PNGPanelWidthIn)
	}
	if c.PNGPanelHeightIn != nil && *c.PNGPanelHeightIn <= 0 {
		return fmt.Errorf("png_panel_height_in must be positive, got %f", *c.PNGPanelHeightIn)
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.CatalogPath != nil && *c.CatalogPath == "" {
		return fmt.Errorf("catalog_path must not be empty")
	}
	if c.ListenAddr != nil && *c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	return nil
}

// GetTheme returns the chart theme or the default.
func (c *Config) GetTheme() string {
	if c.Theme == nil {
		return render.DefaultOptions().Theme
	}
	return *c.Theme
}

// GetPanelWidth returns the HTML panel width in pixels or the default.
func (c *Config) GetPanelWidth() int {
	if c.PanelWidth == nil {
		return render.DefaultOptions().PanelWidth
	}
	return *c.PanelWidth
}

// GetPanelHeight returns the HTML panel height in pixels or the default.
func (c *Config) GetPanelHeight() int {
	if c.PanelHeight == nil {
		return render.DefaultOptions().PanelHeight
	}
	return *c.PanelHeight
}

// GetAssetsHost returns the echarts assets host or the default.
func (c *Config) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return render.DefaultOptions().AssetsHost
	}
	return *c.AssetsHost
}

// GetPNGPanelWidthIn returns the PNG panel width in inches or the default.
func (c *Config) GetPNGPanelWidthIn() float64 {
	if c.PNGPanelWidthIn == nil {
		return render.DefaultOptions().PNGPanelWidth
	}
	return *c.PNGPanelWidthIn
}

// GetPNGPanelHeightIn returns the PNG panel height in inches or the default.
func (c *Config) GetPNGPanelHeightIn() float64 {
	if c.PNGPanelHeightIn == nil {
		return render.DefaultOptions().PNGPanelHeight
	}
	return *c.PNGPanelHeightIn
}

// GetOutputDir returns the report output directory or the default.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == nil {
		return "report"
	}
	return *c.OutputDir
}

// GetCatalogPath returns the run catalog database path or the default.
func (c *Config) GetCatalogPath() string {
	if c.CatalogPath == nil {
		return "runs.db"
	}
	return *c.CatalogPath
}

// GetListenAddr returns the dashboard listen address or the default.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == nil {
		return ":8080"
	}
	return *c.ListenAddr
}

// RenderOptions assembles render options from the configured values.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Theme:          c.GetTheme(),
		PanelWidth:     c.GetPanelWidth(),
		PanelHeight:    c.GetPanelHeight(),
		AssetsHost:     c.GetAssetsHost(),
		PNGPanelWidth:  c.GetPNGPanelWidthIn(),
		PNGPanelHeight: c.GetPNGPanelHeightIn(),
	}
}
