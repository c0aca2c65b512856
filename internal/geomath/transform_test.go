package geomath

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestMercatorToLonLat(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want orb.Point
	}{
		{"origin", 0, 0, orb.Point{0, 0}},
		{"east edge", 20037508.34, 0, orb.Point{180, 0}},
		{"west edge", -20037508.34, 0, orb.Point{-180, 0}},
		{"ankara-ish", 3917151.932317253, 4770232.626187268, orb.Point{35.19, 39.37}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MercatorToLonLat(tc.x, tc.y)
			assert.InDelta(t, tc.want[0], got[0], 0.01)
			assert.InDelta(t, tc.want[1], got[1], 0.01)
		})
	}
}

func TestRoundTripWithinTolerance(t *testing.T) {
	for lon := -175.0; lon <= 175; lon += 25 {
		for lat := -80.0; lat <= 80; lat += 20 {
			projected := LonLatToMercator(lon, lat)
			back := MercatorToLonLat(projected[0], projected[1])
			if math.Abs(back[0]-lon) > 0.01 {
				t.Fatalf("lon round trip: %v -> %v", lon, back[0])
			}
			if math.Abs(back[1]-lat) > 0.01 {
				t.Fatalf("lat round trip: %v -> %v", lat, back[1])
			}
		}
	}
}

func TestRingToLonLat(t *testing.T) {
	ring := orb.Ring{{0, 0}, {20037508.34, 0}, {0, 0}}
	got := RingToLonLat(ring)
	assert.Len(t, got, 3)
	assert.Equal(t, orb.Point{180, 0}, got[1])
}

func TestRoundingToTwoDecimals(t *testing.T) {
	p := MercatorToLonLat(1234567.89, 7654321.98)
	assert.Equal(t, p[0], math.Round(p[0]*100)/100)
	assert.Equal(t, p[1], math.Round(p[1]*100)/100)
}
