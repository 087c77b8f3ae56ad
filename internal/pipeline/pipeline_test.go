package pipeline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/poimap/internal/classify"
	"github.com/woozymasta/poimap/internal/config"
	"github.com/woozymasta/poimap/internal/geo"
	"github.com/woozymasta/poimap/internal/journal"
	"github.com/woozymasta/poimap/internal/location"
	"github.com/woozymasta/poimap/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `Nama,Latitude,Longitude,Tipe,Deskripsi
Museum A,-6.99,110.42,Wisata Sejarah,Museum tua
Warung B,-6.98,110.41,Kuliner,Soto
X,abc,110.40,Ibadah Islam,Masjid
`

type fakeCanvas struct {
	saveErr error
	saved   string
	markers []render.Marker
	center  location.Coordinates
}

func (c *fakeCanvas) AddMarker(m render.Marker) { c.markers = append(c.markers, m) }

func (c *fakeCanvas) Save(path string) error {
	c.saved = path
	return c.saveErr
}

type fixture struct {
	pipeline *Pipeline
	canvas   *fakeCanvas
	dir      string
	journal  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		dir:     dir,
		canvas:  &fakeCanvas{},
		journal: filepath.Join(dir, "proses_peta.log"),
	}
	f.pipeline = &Pipeline{
		Classifier:   classify.New(),
		Journal:      journal.New(f.journal),
		H3Resolution: 8,
		NewCanvas: func(center location.Coordinates, _ config.Dataset) Canvas {
			f.canvas.center = center
			return f.canvas
		},
	}

	return f
}

func (f *fixture) dataset(t *testing.T, csv string) config.Dataset {
	t.Helper()

	input := filepath.Join(f.dir, "lokasi.csv")
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o600))

	return config.Dataset{
		Name:   "semarang",
		Input:  input,
		Output: filepath.Join(f.dir, "peta.html"),
	}
}

func (f *fixture) journalText(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(f.journal)
	require.NoError(t, err)

	return string(data)
}

func TestRunScenario(t *testing.T) {
	f := newFixture(t)
	ds := f.dataset(t, scenarioCSV)

	report, err := f.pipeline.Run(ds)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 3, report.Classified)
	assert.Equal(t, 2, report.Placed)
	assert.Equal(t, []string{"X"}, report.Skipped)

	require.Len(t, report.Locations, 3)
	assert.Equal(t, location.KindTouristSite, report.Locations[0].Kind())
	spot, ok := report.Locations[1].(location.CulinarySpot)
	require.True(t, ok)
	assert.Equal(t, "Soto", spot.MenuHighlight)
	place, ok := report.Locations[2].(location.PlaceOfWorship)
	require.True(t, ok)
	assert.Equal(t, "Islam", place.Religion)

	require.Len(t, f.canvas.markers, 2)
	assert.Equal(t, "Museum A", f.canvas.markers[0].Tooltip)
	assert.Equal(t, "Warung B", f.canvas.markers[1].Tooltip)
	assert.Equal(t, location.Describe(report.Locations[1]), f.canvas.markers[1].Popup)
	for _, m := range f.canvas.markers {
		assert.False(t, m.Coords.IsSentinel())
	}

	assert.Equal(t, -6.99, f.canvas.center.Lat())
	assert.Equal(t, 110.42, f.canvas.center.Lon())
	assert.Equal(t, ds.Output, f.canvas.saved)

	lines := strings.Split(strings.TrimSpace(f.journalText(t)), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[semarang\] Starting map`, lines[0])
	assert.Contains(t, lines[1], "Skipped markers for: X (invalid coordinates)")
	assert.Contains(t, lines[2], "created with 2 markers")
}

func TestRunCenterSkipsSentinel(t *testing.T) {
	f := newFixture(t)
	ds := f.dataset(t, "Nama,Latitude,Longitude,Tipe\nX,abc,1,Landmark\nY,-7.1,110.5,Landmark\n")

	_, err := f.pipeline.Run(ds)
	require.NoError(t, err)
	assert.Equal(t, -7.1, f.canvas.center.Lat())
}

func TestRunFallbackCenter(t *testing.T) {
	f := newFixture(t)
	ds := f.dataset(t, "Nama,Latitude,Longitude,Tipe\nHotel,1,1,Hotel\n")

	report, err := f.pipeline.Run(ds)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Classified)
	assert.Equal(t, 1, report.Unmatched)
	assert.Empty(t, f.canvas.markers)
	assert.Equal(t, config.DefaultCenter.Lat, f.canvas.center.Lat())
	assert.Equal(t, config.DefaultCenter.Lon, f.canvas.center.Lon())
	assert.Contains(t, f.journalText(t), "No location data to map")

	ds.Center = &config.Point{Lat: -7.56, Lon: 110.81}
	_, err = f.pipeline.Run(ds)
	require.NoError(t, err)
	assert.Equal(t, -7.56, f.canvas.center.Lat())
}

func TestRunMissingInput(t *testing.T) {
	f := newFixture(t)
	ds := config.Dataset{Name: "semarang", Input: filepath.Join(f.dir, "missing.csv"), Output: filepath.Join(f.dir, "peta.html")}

	report, err := f.pipeline.Run(ds)
	assert.True(t, location.IsNotFound(err))
	assert.Equal(t, 0, report.Rows)
	assert.Empty(t, report.Locations)
	assert.Empty(t, f.canvas.saved)
	assert.Contains(t, f.journalText(t), "Failed: input file not found")
}

func TestRunSaveFailure(t *testing.T) {
	f := newFixture(t)
	f.canvas.saveErr = &location.Error{Type: location.ErrorTypeRenderTarget, Message: "cannot save map", Err: errors.New("disk full")}
	ds := f.dataset(t, scenarioCSV)

	report, err := f.pipeline.Run(ds)
	assert.True(t, location.IsRenderTarget(err))
	assert.Equal(t, 2, report.Placed)
	assert.Contains(t, f.journalText(t), "ERROR saving map")
}

func TestRunDropsBadRecord(t *testing.T) {
	f := newFixture(t)
	ds := f.dataset(t, "Nama,Latitude,Longitude,Tipe,Deskripsi\nJauh,-95,110,Kuliner,Soto\nWarung B,-6.98,110.41,Kuliner,Soto\n")

	report, err := f.pipeline.Run(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Placed)
}

func TestRunGeoJSONExport(t *testing.T) {
	f := newFixture(t)
	ds := f.dataset(t, scenarioCSV)
	ds.GeoJSON = filepath.Join(f.dir, "out", "lokasi.geojson")

	_, err := f.pipeline.Run(ds)
	require.NoError(t, err)

	data, err := os.ReadFile(ds.GeoJSON)
	require.NoError(t, err)

	var fc geo.GeoJSONFeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Museum A", fc.Features[0].Properties["name"])
	assert.Equal(t, "culinary_spot", fc.Features[1].Properties["kind"])
	assert.Equal(t, []float64{110.41, -6.98}, fc.Features[1].Geometry.Coordinates)
	assert.NotEmpty(t, fc.Features[0].Properties["h3"])
}

func TestRunRendersPage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lokasi.csv")
	require.NoError(t, os.WriteFile(input, []byte(scenarioCSV), 0o600))

	cfg := &config.Config{Journal: filepath.Join(dir, "run.log"), Datasets: []config.Dataset{{
		Name:   "semarang",
		Input:  input,
		Output: filepath.Join(dir, "peta.html"),
	}}}
	cfg.Normalize()

	report, err := New(cfg).Run(cfg.Datasets[0])
	require.NoError(t, err)
	assert.Equal(t, 2, report.Placed)

	page, err := os.ReadFile(cfg.Datasets[0].Output)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(page), "L.marker("))
}

func TestFeatures(t *testing.T) {
	site, _ := location.NewTouristSite("Museum A", location.NewCoordinates(-6.99, 110.42), "Wisata Sejarah", "")
	place, _ := location.NewPlaceOfWorship("X", location.ParseCoordinates("abc", "1"), "Islam", "")

	fc, skipped := Features([]location.Location{site, place}, -1)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, []string{"X"}, skipped)
	assert.NotContains(t, fc.Features[0].Properties, "h3")
	assert.Equal(t, "Wisata Sejarah", fc.Features[0].Properties["category"])
}
