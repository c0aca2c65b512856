package geomath

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// LengthLabel returns a display label for the geodesic length of a line
// drawn in projected map coordinates: meters up to 100 m, kilometers above.
func LengthLabel(line orb.LineString) string {
	geographic := make(orb.LineString, len(line))
	for i, p := range line {
		geographic[i] = inverse(p[0], p[1])
	}
	length := geo.Length(geographic)
	if length > 100 {
		return fmt.Sprintf("%.2f km", length/1000)
	}
	return fmt.Sprintf("%.2f m", length)
}

// AreaLabel returns a display label for the geodesic area of a polygon drawn
// in projected map coordinates: square meters up to 10000 m², square
// kilometers above.
func AreaLabel(poly orb.Polygon) string {
	geographic := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		r := make(orb.Ring, len(ring))
		for j, p := range ring {
			r[j] = inverse(p[0], p[1])
		}
		geographic[i] = r
	}
	area := math.Abs(geo.Area(geographic))
	if area > 10000 {
		return fmt.Sprintf("%.2f km²", area/1000000)
	}
	return fmt.Sprintf("%.2f m²", area)
}
