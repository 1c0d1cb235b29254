package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", -6.2088, 106.8456, -6.2088, 106.8456, 0, 0.01},
		// Jakarta (Monas) to Bandung (Gedung Sate), roughly 116 km
		{"jakarta to bandung", -6.1754, 106.8272, -6.9025, 107.6186, 116000, 3000},
		// one degree of latitude at the equator is about 111.2 km
		{"one degree latitude", 0, 0, 1, 0, 111195, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			assert.InDelta(t, c.want, got, c.tolerance)
		})
	}
}

func TestWithinRadius(t *testing.T) {
	officeLat, officeLon := -6.2088, 106.8456

	// ~110 m north of the office
	assert.True(t, WithinRadius(officeLat+0.001, officeLon, officeLat, officeLon, 200))
	// ~1.1 km north of the office
	assert.False(t, WithinRadius(officeLat+0.01, officeLon, officeLat, officeLon, 200))
}
