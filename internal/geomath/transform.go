// Package geomath converts projected map coordinates to geographic ones and
// builds measurement labels for drawn geometries.
package geomath

import (
	"math"

	"github.com/paulmach/orb"
)

// mercatorExtent is the Web Mercator half-circumference in meters. Projected
// x/y coordinates are valid within [-mercatorExtent, mercatorExtent].
const mercatorExtent = 20037508.34

// MercatorToLonLat converts a projected Web Mercator coordinate pair to a
// longitude/latitude point, each rounded to two decimal places. The function
// is pure and total over the plane.
func MercatorToLonLat(x, y float64) orb.Point {
	p := inverse(x, y)
	return orb.Point{round2(p[0]), round2(p[1])}
}

// LonLatToMercator is the forward spherical projection, mapping a
// longitude/latitude pair onto the projected plane.
func LonLatToMercator(lon, lat float64) orb.Point {
	x := lon * mercatorExtent / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * mercatorExtent / 180
	return orb.Point{x, y}
}

// RingToLonLat maps MercatorToLonLat over every vertex of a ring.
func RingToLonLat(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = MercatorToLonLat(p[0], p[1])
	}
	return out
}

// inverse is the unrounded inverse projection. Measurement keeps full
// precision; only the preview/export path rounds.
func inverse(x, y float64) orb.Point {
	lon := x * 180 / mercatorExtent
	lat := y * 180 / mercatorExtent
	lat = 180 / math.Pi * (2*math.Atan(math.Exp(lat*math.Pi/180)) - math.Pi/2)
	return orb.Point{lon, lat}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
