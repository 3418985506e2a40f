package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.Zero(t, Distance(12.971, 77.594, 12.971, 77.594))
}

func TestDistanceCommutative(t *testing.T) {
	d1 := Distance(12.971, 77.594, 13.05, 77.60)
	d2 := Distance(13.05, 77.60, 12.971, 77.594)
	assert.Equal(t, d1, d2)
}

func TestDistanceNearbyPoints(t *testing.T) {
	// One ten-thousandth of a degree in each axis near Bangalore is
	// roughly fifteen meters.
	d := Distance(12.971, 77.594, 12.9711, 77.5941)
	assert.InDelta(t, 15.5, d, 1.5)
}

func TestDistanceHalfKilometer(t *testing.T) {
	d := Distance(12.971, 77.594, 12.9755, 77.594)
	assert.InDelta(t, 500, d, 5)
}

func TestDistanceLongRange(t *testing.T) {
	// Bangalore to Chennai is about 290 km as the crow flies.
	d := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290_000, d, 10_000)
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	// Every point within the radius must fall inside the box, including
	// points due north, east, and on the diagonal at full distance.
	lat, lon, radius := 12.971, 77.594, 500.0
	latDelta, lonDelta := BoundingBox(lat, radius)

	north := lat + 500/metersPerDegree
	assert.LessOrEqual(t, north-lat, latDelta)

	eastMeters := Distance(lat, lon, lat, lon+lonDelta)
	assert.GreaterOrEqual(t, eastMeters, radius)

	diag := Distance(lat, lon, lat+latDelta, lon+lonDelta)
	assert.GreaterOrEqual(t, diag, radius)
}

func TestBoundingBoxWidensWithLatitude(t *testing.T) {
	_, equatorLon := BoundingBox(0, 1000)
	_, nordicLon := BoundingBox(60, 1000)
	assert.Greater(t, nordicLon, equatorLon)

	// At the pole the cosine vanishes; the box covers all longitudes.
	_, polarLon := BoundingBox(90, 1000)
	assert.Equal(t, 180.0, polarLon)
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, WithinRadius(12.971, 77.594, 12.9711, 77.5941, 100))
	assert.False(t, WithinRadius(12.971, 77.594, 12.9755, 77.594, 100))
	assert.True(t, WithinRadius(12.971, 77.594, 12.971, 77.594, 0))
}
