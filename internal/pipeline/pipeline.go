// Package pipeline loads, classifies and renders location datasets.
package pipeline

import (
	"os"
	"strings"

	"github.com/woozymasta/poimap/internal/classify"
	"github.com/woozymasta/poimap/internal/config"
	"github.com/woozymasta/poimap/internal/journal"
	"github.com/woozymasta/poimap/internal/location"
	"github.com/woozymasta/poimap/internal/render"
	"github.com/woozymasta/poimap/internal/source"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Canvas receives the markers of one run and persists them.
type Canvas interface {
	AddMarker(m render.Marker)
	Save(path string) error
}

// CanvasFactory creates the canvas of a dataset centered at center.
type CanvasFactory func(center location.Coordinates, ds config.Dataset) Canvas

// MapCanvas returns a factory producing Leaflet pages configured by m.
func MapCanvas(m config.Map) CanvasFactory {
	return func(center location.Coordinates, ds config.Dataset) Canvas {
		return render.NewMap(center, render.Options{
			Title:         ds.Title,
			TileURL:       m.Tiles,
			Attribution:   ds.Attribution,
			Zoom:          ds.Zoom,
			MaxZoom:       m.MaxZoom,
			PopupMaxWidth: m.PopupMaxWidth,
			FitBounds:     m.FitBounds,
			Minify:        m.Minify,
		})
	}
}

// Report summarizes one run.
type Report struct {
	Locations []location.Location `json:"-"`
	Dataset   string              `json:"dataset"`
	Output    string              `json:"output"`
	Skipped   []string            `json:"skipped"`
	classify.Stats
	Placed int `json:"placed"`
}

// Pipeline runs datasets through load, classify and render.
type Pipeline struct {
	Classifier *classify.Classifier
	Journal    *journal.Journal
	NewCanvas  CanvasFactory

	// H3Resolution of the cell added to exported GeoJSON features, negative disables it.
	H3Resolution int
	// Progress shows a progress bar while placing markers when stderr is a terminal.
	Progress bool
}

// New returns a pipeline rendering Leaflet pages per cfg.
func New(cfg *config.Config) *Pipeline {
	res := config.DefaultH3Resolution
	if cfg.H3Resolution != nil {
		res = *cfg.H3Resolution
	}

	return &Pipeline{
		Classifier:   classify.New(),
		Journal:      journal.New(cfg.Journal),
		NewCanvas:    MapCanvas(cfg.Map),
		H3Resolution: res,
	}
}

// Run processes one dataset. Load and save failures are journaled and returned
// together with whatever the report holds at that point; single bad rows never stop the run.
func (p *Pipeline) Run(ds config.Dataset) (Report, error) {
	report := Report{Dataset: ds.Name, Output: ds.Output, Skipped: []string{}}
	tag := "[" + ds.Name + "]"

	p.Journal.Printf("%s Starting map %q from %q", tag, ds.Output, ds.Input)
	log.Info().
		Str("dataset", ds.Name).
		Str("input", ds.Input).
		Str("output", ds.Output).
		Msg("Processing dataset")

	rows, err := source.Load(ds.Input)
	if err != nil {
		log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to load input")
		p.Journal.Printf("%s Failed: %v", tag, err)

		return report, err
	}

	records, stats := p.Classifier.ClassifyAll(rows)
	report.Stats = stats
	report.Locations = records

	if len(records) == 0 {
		log.Warn().Str("dataset", ds.Name).Msg("No locations to map, rendering empty map")
		p.Journal.Printf("%s No location data to map", tag)
	}

	canvas := p.NewCanvas(p.center(records, ds), ds)
	placed := p.place(canvas, records, ds.Name, &report)

	if len(report.Skipped) > 0 {
		log.Warn().
			Str("dataset", ds.Name).
			Strs("names", report.Skipped).
			Msg("Skipped markers with invalid coordinates")
		p.Journal.Printf("%s Skipped markers for: %s (invalid coordinates)", tag, strings.Join(report.Skipped, ", "))
	}

	if err := canvas.Save(ds.Output); err != nil {
		log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to save map")
		p.Journal.Printf("%s ERROR saving map %q: %v", tag, ds.Output, err)

		return report, err
	}

	if ds.GeoJSON != "" {
		fc, _ := Features(placed, p.H3Resolution)
		if err := SaveGeoJSON(ds.GeoJSON, fc); err != nil {
			log.Error().Err(err).Str("dataset", ds.Name).Msg("Failed to save GeoJSON")
			p.Journal.Printf("%s ERROR saving GeoJSON %q: %v", tag, ds.GeoJSON, err)

			return report, err
		}
	}

	log.Info().
		Str("dataset", ds.Name).
		Int("rows", report.Rows).
		Int("classified", report.Classified).
		Int("placed", report.Placed).
		Int("skipped", len(report.Skipped)).
		Int("failed", report.Failed).
		Msg("Map created")
	p.Journal.Printf("%s Map %q created with %d markers", tag, ds.Output, report.Placed)

	return report, nil
}

// center picks the first placeable record, then the dataset fallback, then the built-in one.
func (p *Pipeline) center(records []location.Location, ds config.Dataset) location.Coordinates {
	for _, rec := range records {
		if c := rec.Coordinates(); !c.IsSentinel() {
			return c
		}
	}

	fallback := config.DefaultCenter
	if ds.Center != nil {
		fallback = *ds.Center
	}

	return location.NewCoordinates(fallback.Lat, fallback.Lon)
}

func (p *Pipeline) place(canvas Canvas, records []location.Location, name string, report *Report) []location.Location {
	var bar *progressbar.ProgressBar
	if p.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Placing markers "+name),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	placed := make([]location.Location, 0, len(records))
	for _, rec := range records {
		if rec.Coordinates().IsSentinel() {
			report.Skipped = append(report.Skipped, rec.Name())
			log.Debug().
				Str("name", rec.Name()).
				Bool("parsed", rec.Coordinates().Parsed()).
				Msg("Marker skipped")
		} else {
			canvas.AddMarker(render.Marker{
				Coords:  rec.Coordinates(),
				Popup:   location.Describe(rec),
				Tooltip: rec.Name(),
			})
			placed = append(placed, rec)
			report.Placed++
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Debug().Err(err).Msg("Failed to update progress bar")
			}
		}
	}

	return placed
}
