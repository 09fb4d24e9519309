package geofence

import (
	"fmt"
	"math"

	"anoa.com/jelajahpath/internal/model"
	"anoa.com/jelajahpath/pkg/apperror"
)

// Earth radius in meters for the spherical haversine distance.
const earthRadiusMeters = 6371000.0

// Match is a point whose geofence currently contains the user.
type Match struct {
	Point          *model.Point
	DistanceMeters float64
}

// Evaluate returns every point whose great-circle distance from the user
// position is within the point's radius, boundary inclusive. Overlapping
// geofences all match; each point's visit is an independent event, so there is
// no nearest-wins tie-break. The function is pure and safe for concurrent use.
func Evaluate(lat, lng float64, points []model.Point) ([]Match, error) {
	if err := validateCoordinate(lat, lng); err != nil {
		return nil, err
	}

	var matches []Match
	for i := range points {
		p := &points[i]
		d := HaversineMeters(lat, lng, p.Latitude, p.Longitude)
		if d <= p.RadiusMeters {
			matches = append(matches, Match{Point: p, DistanceMeters: d})
		}
	}

	return matches, nil
}

// HaversineMeters computes the great-circle distance between two WGS84
// coordinates on a sphere of radius 6 371 000 m.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func validateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: coordinate must be a finite number", apperror.ErrValidation)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", apperror.ErrValidation, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", apperror.ErrValidation, lng)
	}
	return nil
}
