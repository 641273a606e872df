package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/tukang/internal/pkg/models"
)

// AreaHashPrecision is the geohash length used to tag a booking's area (~1.2 km cells)
const AreaHashPrecision = 6

// earthRadiusKm is the mean Earth radius used by the haversine formula
const earthRadiusKm = 6371.0

// DistanceKm calculates the great-circle distance between two points in kilometers using the Haversine formula
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceBetween returns the distance between two coordinates, or +Inf when
// either side is missing.
func DistanceBetween(from, to *models.Coordinates) float64 {
	if from == nil || to == nil {
		return math.Inf(1)
	}
	return DistanceKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// AreaHash converts coordinates to a geohash area tag
func AreaHash(c *models.Coordinates) string {
	if c == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, AreaHashPrecision)
}
