package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/poimap/internal/geo"
	"github.com/woozymasta/poimap/internal/location"

	"github.com/rs/zerolog/log"
)

// Features converts records into a GeoJSON feature collection.
// Records at the sentinel coordinate are left out and their names returned.
func Features(records []location.Location, h3Resolution int) (fc geo.GeoJSONFeatureCollection, skipped []string) {
	fc = geo.NewFeatureCollection(len(records))

	for _, rec := range records {
		c := rec.Coordinates()
		if c.IsSentinel() {
			skipped = append(skipped, rec.Name())
			continue
		}

		props := map[string]interface{}{
			"name":        rec.Name(),
			"kind":        rec.Kind().String(),
			"category":    location.Category(rec),
			"popup":       location.Describe(rec),
			"description": location.DescribePlain(rec),
		}

		if h3Resolution >= 0 {
			cell, err := geo.H3Cell(c.Lat(), c.Lon(), h3Resolution)
			if err != nil {
				log.Warn().Err(err).Str("name", rec.Name()).Msg("Failed to compute H3 cell")
			} else {
				props["h3"] = cell
			}
		}

		fc.Features = append(fc.Features, geo.NewPointFeature(c.Lat(), c.Lon(), props))
	}

	return fc, skipped
}

// SaveGeoJSON marshals the feature collection and writes it to path.
func SaveGeoJSON(path string, fc geo.GeoJSONFeatureCollection) (err error) {
	renderErr := func(err error) error {
		return &location.Error{
			Type:    location.ErrorTypeRenderTarget,
			Message: "cannot save GeoJSON",
			Path:    path,
			Err:     err,
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return renderErr(err)
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

	if err := json.NewEncoder(f).Encode(fc); err != nil {
		return renderErr(err)
	}

	return nil
}
