// Package geo handles geographic data structures and point helpers.
package geo

// GeoJSON object types used by this package.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat]
}

// NewFeatureCollection returns an empty collection with capacity for n features.
func NewFeatureCollection(n int) GeoJSONFeatureCollection {
	return GeoJSONFeatureCollection{
		Type:     TypeFeatureCollection,
		Features: make([]GeoJSONFeature, 0, n),
	}
}

// NewPointFeature builds a Point feature. Note the argument order is lat, lon
// while the stored coordinates are [lon, lat].
func NewPointFeature(lat, lon float64, properties map[string]interface{}) GeoJSONFeature {
	if properties == nil {
		properties = map[string]interface{}{}
	}

	return GeoJSONFeature{
		Type: TypeFeature,
		Geometry: GeoJSONGeometry{
			Type:        TypePoint,
			Coordinates: []float64{lon, lat},
		},
		Properties: properties,
	}
}
