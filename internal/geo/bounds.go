package geo

import "github.com/paulmach/orb"

// Bound returns the bounding box of points given as [lon, lat] pairs.
// ok is false for an empty input.
func Bound(points []orb.Point) (bound orb.Bound, ok bool) {
	if len(points) == 0 {
		return orb.Bound{}, false
	}

	return orb.MultiPoint(points).Bound(), true
}

// LatLng converts an orb point to the [lat, lng] order Leaflet expects.
func LatLng(p orb.Point) [2]float64 {
	return [2]float64{p.Lat(), p.Lon()}
}
