package geo

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// MaxH3Resolution is the finest H3 resolution.
const MaxH3Resolution = 15

// H3Cell returns the hexadecimal H3 index of the cell containing the point.
func H3Cell(lat, lon float64, resolution int) (string, error) {
	if resolution < 0 || resolution > MaxH3Resolution {
		return "", fmt.Errorf("h3 resolution %d out of range [0, %d]", resolution, MaxH3Resolution)
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), resolution)
	if err != nil {
		return "", fmt.Errorf("converting to h3 cell at res %d: %w", resolution, err)
	}

	return cell.String(), nil
}
