// Package render builds interactive Leaflet map pages with location markers.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/woozymasta/poimap/assets"
	"github.com/woozymasta/poimap/internal/geo"
	"github.com/woozymasta/poimap/internal/location"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Page defaults.
const (
	DefaultTitle         = "Peta Lokasi"
	DefaultZoom          = 13
	DefaultMaxZoom       = 19
	DefaultPopupMaxWidth = 300
	DefaultTileURL       = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	DefaultLeafletCSS    = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	DefaultLeafletJS     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

var (
	pageTemplate = template.Must(template.New("map").Parse(assets.MapTemplate))
	jsMimetype   = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)
)

// Options configures the rendered page. Zero fields take the package defaults.
type Options struct {
	Title         string
	TileURL       string
	Attribution   string
	LeafletCSS    string
	LeafletJS     string
	Zoom          int
	MaxZoom       int
	PopupMaxWidth int
	FitBounds     bool
	Minify        bool
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.TileURL == "" {
		o.TileURL = DefaultTileURL
	}
	if o.Attribution == "" {
		o.Attribution = DefaultAttribution
	}
	if o.LeafletCSS == "" {
		o.LeafletCSS = DefaultLeafletCSS
	}
	if o.LeafletJS == "" {
		o.LeafletJS = DefaultLeafletJS
	}
	if o.Zoom <= 0 {
		o.Zoom = DefaultZoom
	}
	if o.MaxZoom <= 0 {
		o.MaxZoom = DefaultMaxZoom
	}
	if o.PopupMaxWidth <= 0 {
		o.PopupMaxWidth = DefaultPopupMaxWidth
	}

	return o
}

// Marker is one point on the map.
type Marker struct {
	ID      string
	Popup   string // HTML
	Tooltip string // plain text, escaped on render
	Coords  location.Coordinates
}

// Map is an in-memory map page. Markers are kept in insertion order.
type Map struct {
	id      string
	markers []Marker
	center  location.Coordinates
	opts    Options
}

// NewMap creates a map centered at center.
func NewMap(center location.Coordinates, opts Options) *Map {
	return &Map{
		id:     "map_" + newID(),
		center: center,
		opts:   opts.withDefaults(),
	}
}

// Center returns the initial map center.
func (m *Map) Center() location.Coordinates { return m.center }

// Markers returns the placed markers.
func (m *Map) Markers() []Marker { return m.markers }

// AddMarker places a marker. An empty ID is replaced by a generated one.
func (m *Map) AddMarker(mk Marker) {
	if mk.ID == "" {
		mk.ID = "marker_" + newID()
	}

	m.markers = append(m.markers, mk)
}

type markerData struct {
	ID      string
	Popup   string
	Tooltip string
	LatLng  [2]float64
}

type pageData struct {
	Title         string
	MapID         string
	TileURL       string
	Attribution   string
	LeafletCSS    string
	LeafletJS     string
	Markers       []markerData
	Center        [2]float64
	Bounds        [2][2]float64
	Zoom          int
	MaxZoom       int
	PopupMaxWidth int
	FitBounds     bool
}

// Render writes the HTML page to w.
func (m *Map) Render(w io.Writer) error {
	data := pageData{
		Title:         m.opts.Title,
		MapID:         m.id,
		TileURL:       m.opts.TileURL,
		Attribution:   m.opts.Attribution,
		LeafletCSS:    m.opts.LeafletCSS,
		LeafletJS:     m.opts.LeafletJS,
		Center:        [2]float64{m.center.Lat(), m.center.Lon()},
		Zoom:          m.opts.Zoom,
		MaxZoom:       m.opts.MaxZoom,
		PopupMaxWidth: m.opts.PopupMaxWidth,
		Markers:       make([]markerData, 0, len(m.markers)),
	}

	points := make([]orb.Point, 0, len(m.markers))
	for _, mk := range m.markers {
		data.Markers = append(data.Markers, markerData{
			ID:      mk.ID,
			Popup:   mk.Popup,
			Tooltip: template.HTMLEscapeString(mk.Tooltip),
			LatLng:  [2]float64{mk.Coords.Lat(), mk.Coords.Lon()},
		})
		points = append(points, orb.Point{mk.Coords.Lon(), mk.Coords.Lat()})
	}

	// a single marker has a zero-area bound, fitting would zoom to the max
	if bound, ok := geo.Bound(points); ok && m.opts.FitBounds && len(points) > 1 {
		data.FitBounds = true
		data.Bounds = [2][2]float64{geo.LatLng(bound.Min), geo.LatLng(bound.Max)}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing map template: %w", err)
	}

	if !m.opts.Minify {
		_, err := buf.WriteTo(w)
		return err
	}

	if err := newMinifier().Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("minifying map page: %w", err)
	}

	return nil
}

// Save renders the page into the file at path.
// Failures are returned as location.ErrorTypeRenderTarget errors.
func (m *Map) Save(path string) (err error) {
	renderErr := func(err error) error {
		return &location.Error{
			Type:    location.ErrorTypeRenderTarget,
			Message: "cannot save map",
			Path:    path,
			Err:     err,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return renderErr(err)
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
			if err == nil {
				err = renderErr(closeErr)
			}
		}
	}()

	if err := m.Render(f); err != nil {
		return renderErr(err)
	}

	log.Debug().
		Str("path", path).
		Int("markers", len(m.markers)).
		Msg("Map saved")

	return nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(jsMimetype, js.Minify)

	return m
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
