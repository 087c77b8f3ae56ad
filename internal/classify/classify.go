// Package classify turns loaded CSV rows into location records.
package classify

import (
	"strings"

	"github.com/woozymasta/poimap/internal/location"
	"github.com/woozymasta/poimap/internal/source"

	"github.com/rs/zerolog/log"
)

// Defaults for optional columns.
const (
	DefaultCategory    = "Lainnya"
	DefaultDescription = ""
)

// Fields are the row values handed to a rule constructor.
type Fields struct {
	Name        string
	Category    string
	Description string
	Coords      location.Coordinates
}

// Rule maps a category to one record variant.
type Rule struct {
	Match func(category string) bool
	Build func(f Fields) (location.Location, error)
	Name  string
}

// Religion maps a category keyword to a religion name.
type Religion struct {
	Keyword string
	Name    string
}

// Religions is checked in order; the first keyword found in the category wins.
var Religions = []Religion{
	{Keyword: "Islam", Name: "Islam"},
	{Keyword: "Kristen", Name: "Kristen"},
	{Keyword: "Klenteng", Name: "Tridharma"},
}

// DefaultRules is the category priority table, first match wins.
var DefaultRules = []Rule{
	{
		Name: "tourist_site",
		Match: func(category string) bool {
			return strings.Contains(category, "Wisata") || category == "Landmark"
		},
		Build: func(f Fields) (location.Location, error) {
			site, err := location.NewTouristSite(f.Name, f.Coords, f.Category, f.Description)
			if err != nil {
				return nil, err
			}

			return site, nil
		},
	},
	{
		Name: "culinary_spot",
		Match: func(category string) bool {
			return category == "Kuliner"
		},
		Build: func(f Fields) (location.Location, error) {
			// the input has no menu column, Deskripsi doubles as the menu highlight
			spot, err := location.NewCulinarySpot(f.Name, f.Coords, f.Description)
			if err != nil {
				return nil, err
			}

			return spot, nil
		},
	},
	{
		Name: "place_of_worship",
		Match: func(category string) bool {
			return strings.Contains(category, "Ibadah")
		},
		Build: func(f Fields) (location.Location, error) {
			place, err := location.NewPlaceOfWorship(f.Name, f.Coords, InferReligion(f.Category), f.Description)
			if err != nil {
				return nil, err
			}

			return place, nil
		},
	},
}

// InferReligion returns the religion named by a worship category, or "Umum".
func InferReligion(category string) string {
	for _, r := range Religions {
		if strings.Contains(category, r.Keyword) {
			return r.Name
		}
	}

	return location.DefaultReligion
}

// Stats counts classification outcomes.
type Stats struct {
	Rows       int `json:"rows"`
	Classified int `json:"classified"`
	Incomplete int `json:"incomplete"`
	Unmatched  int `json:"unmatched"`
	Failed     int `json:"failed"`
}

type outcome int

const (
	outcomeClassified outcome = iota
	outcomeIncomplete
	outcomeUnmatched
	outcomeFailed
)

// Classifier applies an ordered rule table to rows.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, or over DefaultRules when none are given.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	return &Classifier{rules: rules}
}

// Classify returns the record for row.
// Rows without a name or coordinates and rows with an unknown category yield (nil, nil).
// A constructor failure yields a location.ErrorTypeRecordConstruction error.
func (c *Classifier) Classify(row source.Row) (location.Location, error) {
	loc, _, err := c.classify(row)
	return loc, err
}

func (c *Classifier) classify(row source.Row) (location.Location, outcome, error) {
	name, okName := row.Get(source.ColumnName)
	lat, okLat := row.Get(source.ColumnLatitude)
	lon, okLon := row.Get(source.ColumnLongitude)

	if !okName || !okLat || !okLon {
		log.Debug().
			Int("row", row.Index).
			Msg("Skipping row: name, latitude or longitude missing")

		return nil, outcomeIncomplete, nil
	}

	fields := Fields{
		Name:        name,
		Coords:      location.ParseCoordinates(lat, lon),
		Category:    row.GetOr(source.ColumnCategory, DefaultCategory),
		Description: row.GetOr(source.ColumnDescription, DefaultDescription),
	}

	for _, rule := range c.rules {
		if !rule.Match(fields.Category) {
			continue
		}

		loc, err := rule.Build(fields)
		if err != nil {
			return nil, outcomeFailed, &location.Error{
				Type:    location.ErrorTypeRecordConstruction,
				Message: "cannot build " + rule.Name,
				Name:    name,
				Row:     row.Index,
				Err:     err,
			}
		}

		return loc, outcomeClassified, nil
	}

	log.Warn().
		Int("row", row.Index).
		Str("name", name).
		Str("category", fields.Category).
		Msg("Unrecognized category, row skipped")

	return nil, outcomeUnmatched, nil
}

// ClassifyAll classifies every row in order. Failing rows are logged and dropped.
func (c *Classifier) ClassifyAll(rows []source.Row) ([]location.Location, Stats) {
	stats := Stats{Rows: len(rows)}
	locations := make([]location.Location, 0, len(rows))

	for _, row := range rows {
		loc, result, err := c.classify(row)

		switch result {
		case outcomeClassified:
			stats.Classified++
			locations = append(locations, loc)
		case outcomeIncomplete:
			stats.Incomplete++
		case outcomeUnmatched:
			stats.Unmatched++
		case outcomeFailed:
			stats.Failed++
			log.Error().
				Err(err).
				Int("row", row.Index).
				Msg("Failed to create location record")
		}
	}

	log.Debug().
		Int("rows", stats.Rows).
		Int("classified", stats.Classified).
		Int("incomplete", stats.Incomplete).
		Int("unmatched", stats.Unmatched).
		Int("failed", stats.Failed).
		Msg("Rows classified")

	return locations, stats
}
