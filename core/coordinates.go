package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geographic coordinate helpers for the mesh accessors. The frame is the
// geophysical convention: Z points to the north pole, X to the equator at
// 0° longitude, Y to the equator at 90°E. Longitude and latitude are in
// degrees, longitude in [-180, 180], latitude in [-90, 90].

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// LonLatToCartesian converts geographic coordinates and a radius to a
// Cartesian position.
func LonLatToCartesian(lon, lat, radius float64) mgl64.Vec3 {
	lonRad := DegreesToRadians(lon)
	latRad := DegreesToRadians(lat)
	cosLat := math.Cos(latRad)
	return mgl64.Vec3{
		radius * cosLat * math.Cos(lonRad),
		radius * cosLat * math.Sin(lonRad),
		radius * math.Sin(latRad),
	}
}

// CartesianToLonLat converts a Cartesian position to geographic longitude
// and latitude in degrees. The origin maps to (0, 0).
func CartesianToLonLat(p mgl64.Vec3) (lon, lat float64) {
	r := p.Len()
	if r < 1e-10 {
		return 0, 0
	}
	lat = RadiansToDegrees(math.Asin(p.Z() / r))
	lon = RadiansToDegrees(math.Atan2(p.Y(), p.X()))
	return lon, lat
}
