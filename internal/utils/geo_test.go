package utils

import (
	"math"
	"testing"

	"github.com/piresc/tukang/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		tolerance float64
	}{
		{"same point", -6.175392, 106.827153, -6.175392, 106.827153, 0, 0.001},
		{"Jakarta to Bandung", -6.175392, 106.827153, -6.914744, 107.609810, 120, 10},
		{"one degree of longitude on the equator", 0, 0, 0, 1, 111.19, 0.05},
		{"cross equator", -1, 100, 1, 100, 222.39, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := DistanceKm(-6.2, 106.8, -6.3, 106.9)
	b := DistanceKm(-6.3, 106.9, -6.2, 106.8)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceBetween_MissingSide(t *testing.T) {
	assert.True(t, math.IsInf(DistanceBetween(nil, &models.Coordinates{}), 1))
	assert.True(t, math.IsInf(DistanceBetween(&models.Coordinates{}, nil), 1))
}

func TestAreaHash(t *testing.T) {
	hash := AreaHash(&models.Coordinates{Latitude: -6.175392, Longitude: 106.827153})
	assert.Len(t, hash, AreaHashPrecision)
	assert.Equal(t, "qqguyg", hash)
	assert.Empty(t, AreaHash(nil))
}
