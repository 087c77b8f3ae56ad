package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
journal: run.log
h3_resolution: 7
map:
  title: Peta Lokasi
  attribution: OSM
  zoom: 12
  minify: true
datasets:
  - name: semarang
    input: lokasi_semarang.csv
    output: peta_semarang.html
    geojson: semarang.geojson
  - name: solo
    input: lokasi_solo.csv
    output: peta_solo.html
    zoom: 14
    center: {lat: -7.5666, lon: 110.8166}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "run.log", cfg.Journal)
	assert.Equal(t, 7, *cfg.H3Resolution)
	assert.True(t, cfg.Map.Minify)
	require.Len(t, cfg.Datasets, 2)

	semarang := cfg.Datasets[0]
	assert.Equal(t, 12, semarang.Zoom)
	assert.Equal(t, "OSM", semarang.Attribution)
	assert.Equal(t, "Peta Lokasi", semarang.Title)
	assert.Equal(t, DefaultCenter, *semarang.Center)

	solo := cfg.Datasets[1]
	assert.Equal(t, 14, solo.Zoom)
	if diff := cmp.Diff(Point{Lat: -7.5666, Lon: 110.8166}, *solo.Center); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "datasets: [\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "datasets:\n  - name: a\n    input: a.csv\n"))
	assert.ErrorContains(t, err, "input and output are required")

	_, err = Load(writeConfig(t, "map: {zoom: 3}\n"))
	assert.ErrorContains(t, err, "no datasets")

	_, err = Load(writeConfig(t, "datasets:\n  - {name: a, input: a.csv, output: a.html}\n  - {name: a, input: b.csv, output: b.html}\n"))
	assert.ErrorContains(t, err, "duplicate name")

	_, err = Load(writeConfig(t, "datasets:\n  - {name: data/a, input: a.csv, output: a.html}\n"))
	assert.ErrorContains(t, err, "contain no slashes")
}

func TestNormalizeDatasetName(t *testing.T) {
	cfg := &Config{Datasets: []Dataset{
		{Input: "data/lokasi_semarang.csv", Output: "a.html"},
		{Input: "solo", Output: "b.html"},
		{Name: "kudus", Input: "data/kudus.csv", Output: "c.html"},
	}}
	cfg.Normalize()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "lokasi_semarang", cfg.Datasets[0].Name)
	assert.Equal(t, "solo", cfg.Datasets[1].Name)
	assert.Equal(t, "kudus", cfg.Datasets[2].Name)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Datasets, 1)
	assert.Equal(t, DefaultInput, cfg.Datasets[0].Input)
	assert.Equal(t, DefaultOutput, cfg.Datasets[0].Output)
	assert.Equal(t, DefaultJournal, cfg.Journal)
	assert.Equal(t, DefaultZoom, cfg.Datasets[0].Zoom)
	assert.Equal(t, DefaultH3Resolution, *cfg.H3Resolution)
}

func TestFilter(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	all, unknown := cfg.Filter(nil)
	assert.Len(t, all, 2)
	assert.Empty(t, unknown)

	selected, unknown := cfg.Filter([]string{"solo", "jogja", "solo"})
	require.Len(t, selected, 1)
	assert.Equal(t, "solo", selected[0].Name)
	assert.Equal(t, []string{"jogja"}, unknown)
}
