package geo

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointFeature(t *testing.T) {
	f := NewPointFeature(-6.99, 110.42, map[string]interface{}{"name": "Museum A"})

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[110.42,-6.99]},"properties":{"name":"Museum A"}}`,
		string(data))

	empty := NewPointFeature(1, 2, nil)
	assert.NotNil(t, empty.Properties)
}

func TestNewFeatureCollection(t *testing.T) {
	fc := NewFeatureCollection(2)
	assert.Equal(t, TypeFeatureCollection, fc.Type)
	assert.Empty(t, fc.Features)

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestBound(t *testing.T) {
	_, ok := Bound(nil)
	assert.False(t, ok)

	b, ok := Bound([]orb.Point{{110.42, -6.99}, {110.41, -6.98}, {110.45, -7.01}})
	require.True(t, ok)
	assert.Equal(t, orb.Point{110.41, -7.01}, b.Min)
	assert.Equal(t, orb.Point{110.45, -6.98}, b.Max)
	assert.Equal(t, [2]float64{-7.01, 110.41}, LatLng(b.Min))
}

func TestH3Cell(t *testing.T) {
	cell, err := H3Cell(-6.99, 110.42, 8)
	require.NoError(t, err)
	assert.Len(t, cell, 15)

	again, err := H3Cell(-6.99, 110.42, 8)
	require.NoError(t, err)
	assert.Equal(t, cell, again)

	_, err = H3Cell(0, 0, 16)
	assert.Error(t, err)
}
