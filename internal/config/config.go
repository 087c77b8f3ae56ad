// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults.
const (
	DefaultInput        = "lokasi_semarang.csv"
	DefaultOutput       = "peta_interaktif_semarang.html"
	DefaultJournal      = "proses_peta.log"
	DefaultZoom         = 13
	DefaultH3Resolution = 9
)

// DefaultCenter is used when a dataset has no valid record (Semarang).
var DefaultCenter = Point{Lat: -6.9929, Lon: 110.4200}

// Config represents the root configuration file structure.
type Config struct {
	H3Resolution *int      `yaml:"h3_resolution,omitempty" json:"h3_resolution,omitempty"`
	Journal      string    `yaml:"journal,omitempty" json:"journal,omitempty"`
	Map          Map       `yaml:"map" json:"map"`
	Datasets     []Dataset `yaml:"datasets" json:"datasets"`
}

// Map holds page settings shared by every dataset.
type Map struct {
	Center        *Point `yaml:"center,omitempty" json:"center,omitempty"` // fallback center
	Title         string `yaml:"title,omitempty" json:"title,omitempty"`
	Tiles         string `yaml:"tiles,omitempty" json:"tiles,omitempty"`
	Attribution   string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Zoom          int    `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	MaxZoom       int    `yaml:"max_zoom,omitempty" json:"max_zoom,omitempty"`
	PopupMaxWidth int    `yaml:"popup_max_width,omitempty" json:"popup_max_width,omitempty"`
	FitBounds     bool   `yaml:"fit_bounds,omitempty" json:"fit_bounds,omitempty"`
	Minify        bool   `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Dataset is one CSV input rendered into one map page.
type Dataset struct {
	Center      *Point `yaml:"center,omitempty" json:"center,omitempty"`
	Name        string `yaml:"name" json:"name"`
	Input       string `yaml:"input" json:"input"`
	Output      string `yaml:"output" json:"output"`
	GeoJSON     string `yaml:"geojson,omitempty" json:"geojson,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Attribution string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Zoom        int    `yaml:"zoom,omitempty" json:"zoom,omitempty"`
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// Default returns the configuration used when no file is given:
// a single dataset with the built-in paths.
func Default() *Config {
	cfg := &Config{
		Journal: DefaultJournal,
		Datasets: []Dataset{{
			Name:   "semarang",
			Input:  DefaultInput,
			Output: DefaultOutput,
		}},
	}
	cfg.Normalize()

	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}

	return &cfg, nil
}

// Normalize fills map defaults and lets datasets inherit shared map settings.
func (c *Config) Normalize() {
	if c.Map.Zoom <= 0 {
		c.Map.Zoom = DefaultZoom
	}
	if c.Map.Center == nil {
		center := DefaultCenter
		c.Map.Center = &center
	}
	if c.H3Resolution == nil {
		res := DefaultH3Resolution
		c.H3Resolution = &res
	}

	for i := range c.Datasets {
		ds := &c.Datasets[i]

		if ds.Zoom <= 0 {
			ds.Zoom = c.Map.Zoom
		}
		if ds.Attribution == "" {
			ds.Attribution = c.Map.Attribution
		}
		if ds.Title == "" {
			ds.Title = c.Map.Title
		}
		if ds.Center == nil {
			ds.Center = c.Map.Center
		}
		if ds.Name == "" {
			ds.Name = strings.TrimSuffix(filepath.Base(ds.Input), filepath.Ext(ds.Input))
		}
	}
}

// Validate checks that every dataset names its input and output files.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets configured")
	}

	seen := make(map[string]bool, len(c.Datasets))
	for i, ds := range c.Datasets {
		if ds.Input == "" || ds.Output == "" {
			return fmt.Errorf("dataset %d (%s): input and output are required", i, ds.Name)
		}
		if ds.Name == "" || strings.ContainsAny(ds.Name, `/\`) {
			return fmt.Errorf("dataset %d: name %q must be non-empty and contain no slashes", i, ds.Name)
		}
		if seen[ds.Name] {
			return fmt.Errorf("dataset %d: duplicate name %q", i, ds.Name)
		}
		seen[ds.Name] = true
	}

	return nil
}

// Filter returns the datasets named in names, in the given order.
// Unknown names are returned separately. An empty names list selects everything.
func (c *Config) Filter(names []string) (selected []Dataset, unknown []string) {
	if len(names) == 0 {
		return c.Datasets, nil
	}

	available := make(map[string]Dataset, len(c.Datasets))
	for _, ds := range c.Datasets {
		available[ds.Name] = ds
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if ds, ok := available[name]; ok {
			selected = append(selected, ds)
		} else {
			unknown = append(unknown, name)
		}
	}

	return selected, unknown
}
