package server

import (
	"os"
	"sort"

	"github.com/woozymasta/poimap/assets"
	"github.com/woozymasta/poimap/internal/config"

	"github.com/rs/zerolog/log"
)

// MapInfo describes one servable map page.
type MapInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	URL        string `json:"url"`
	GeoJSONURL string `json:"geojson_url,omitempty"`

	page    string
	geojson string
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Maps     map[string]MapInfo
	Default  string
	Favicon  []byte
	MapsList []MapInfo
}

// NewServerContext collects the datasets whose rendered page exists on disk.
// Datasets without output are skipped with a warning.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_datasets_count", len(cfg.Datasets)).Msg("Initializing server context")

	maps := make(map[string]MapInfo, len(cfg.Datasets))
	list := make([]MapInfo, 0, len(cfg.Datasets))

	for _, ds := range cfg.Datasets {
		if !fileExists(ds.Output) {
			log.Warn().
				Str("dataset", ds.Name).
				Str("path", ds.Output).
				Msg("Skipping dataset: rendered map not found")
			continue
		}

		info := MapInfo{
			Name:  ds.Name,
			Title: ds.Title,
			URL:   "/maps/" + ds.Name + "/",
			page:  ds.Output,
		}

		if ds.GeoJSON != "" && fileExists(ds.GeoJSON) {
			info.GeoJSONURL = info.URL + "locations.geojson"
			info.geojson = ds.GeoJSON
		} else {
			log.Trace().
				Str("dataset", ds.Name).
				Msg("GeoJSON skipped: not configured or not found")
		}

		log.Debug().
			Str("dataset", ds.Name).
			Bool("geojson", info.geojson != "").
			Msg("Map validated and added to context")

		maps[ds.Name] = info
		list = append(list, info)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	srv := &ServerContext{
		Maps:     maps,
		MapsList: list,
		Favicon:  assets.Favicon,
	}

	// the first configured dataset is served at "/"
	for _, ds := range cfg.Datasets {
		if _, ok := maps[ds.Name]; ok {
			srv.Default = ds.Name
			break
		}
	}

	log.Info().
		Int("valid_maps_count", len(list)).
		Str("default", srv.Default).
		Msg("Server context initialized successfully")

	return srv
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
