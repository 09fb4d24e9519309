package geofence

import (
	"testing"

	"anoa.com/jelajahpath/internal/model"
	"anoa.com/jelajahpath/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(lat, lng, radius float64) model.Point {
	return model.Point{
		ID:           uuid.New(),
		PathID:       uuid.New(),
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: radius,
	}
}

func TestHaversineMeters(t *testing.T) {
	// Monas to Kota Tua, Jakarta; roughly 4.5 km.
	d := HaversineMeters(-6.1754, 106.8272, -6.1352, 106.8133)
	assert.InDelta(t, 4700, d, 300)

	// Same coordinate is zero distance.
	assert.Zero(t, HaversineMeters(-6.2, 106.8, -6.2, 106.8))
}

func TestEvaluateInsideAndOutside(t *testing.T) {
	inside := point(-6.2000, 106.8000, 50)
	// ~111 m north of the user, well outside its 50 m radius.
	outside := point(-6.1990, 106.8000, 50)

	matches, err := Evaluate(-6.2000, 106.8000, []model.Point{inside, outside})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, inside.ID, matches[0].Point.ID)
	assert.Zero(t, matches[0].DistanceMeters)
}

func TestEvaluateBoundaryInclusive(t *testing.T) {
	userLat, userLng := 0.0, 0.0
	p := point(0.0003, 0.0, 0)
	exact := HaversineMeters(userLat, userLng, p.Latitude, p.Longitude)

	// Distance exactly equal to the radius is a match.
	p.RadiusMeters = exact
	matches, err := Evaluate(userLat, userLng, []model.Point{p})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// Any radius short of the distance is not.
	p.RadiusMeters = exact - 1e-6
	matches, err = Evaluate(userLat, userLng, []model.Point{p})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestEvaluateOverlappingGeofences(t *testing.T) {
	a := point(-6.2000, 106.8000, 100)
	b := point(-6.2001, 106.8000, 100)

	matches, err := Evaluate(-6.2000, 106.8000, []model.Point{a, b})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestEvaluateInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
	}{
		{"latitude too high", 90.01, 0},
		{"latitude too low", -90.01, 0},
		{"longitude too high", 0, 180.5},
		{"longitude too low", 0, -180.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.lat, tt.lng, nil)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	pts := []model.Point{point(-6.2000, 106.8000, 75), point(-6.2002, 106.8001, 75)}

	first, err := Evaluate(-6.2001, 106.8000, pts)
	require.NoError(t, err)
	second, err := Evaluate(-6.2001, 106.8000, pts)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Point.ID, second[i].Point.ID)
		assert.Equal(t, first[i].DistanceMeters, second[i].DistanceMeters)
	}
}
