package location

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinates is an immutable WGS84 latitude/longitude pair.
//
// The zero value is the (0, 0) sentinel. Coordinates that failed to parse
// collapse to the same sentinel, Parsed tells the two cases apart.
type Coordinates struct {
	lat    float64
	lon    float64
	parsed bool
}

// NewCoordinates returns parsed coordinates for the given values.
func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{lat: lat, lon: lon, parsed: true}
}

// ParseCoordinates converts raw latitude and longitude text.
// If either value is not a finite number both fall back to the sentinel.
func ParseCoordinates(lat, lon string) Coordinates {
	la, err := parseFinite(lat)
	if err != nil {
		return Coordinates{}
	}

	lo, err := parseFinite(lon)
	if err != nil {
		return Coordinates{}
	}

	return NewCoordinates(la, lo)
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}

	return v, nil
}

// Lat returns the latitude in degrees.
func (c Coordinates) Lat() float64 { return c.lat }

// Lon returns the longitude in degrees.
func (c Coordinates) Lon() float64 { return c.lon }

// Parsed reports whether the values came from successfully parsed input.
func (c Coordinates) Parsed() bool { return c.parsed }

// IsSentinel reports whether the coordinates must not be placed on a map:
// either parsing failed or the point sits exactly at (0, 0).
func (c Coordinates) IsSentinel() bool {
	return !c.parsed || (c.lat == 0 && c.lon == 0)
}

// String formats the pair with four decimals, e.g. "(-6.9900, 110.4200)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.lat, c.lon)
}

func (c Coordinates) validate() error {
	if !c.parsed {
		return nil
	}
	if c.lat < -90 || c.lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.lat)
	}
	if c.lon < -180 || c.lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.lon)
	}

	return nil
}
