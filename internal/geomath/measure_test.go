package geomath

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

// Roughly a 1-degree segment along the equator, in projected coordinates.
func equatorSegment() orb.LineString {
	a := LonLatToMercator(0, 0)
	b := LonLatToMercator(1, 0)
	return orb.LineString{a, b}
}

func TestLengthLabelKilometers(t *testing.T) {
	label := LengthLabel(equatorSegment())
	if !strings.HasSuffix(label, " km") {
		t.Fatalf("expected km label, got %q", label)
	}
}

func TestLengthLabelMeters(t *testing.T) {
	line := orb.LineString{{0, 0}, {50, 0}}
	label := LengthLabel(line)
	if !strings.HasSuffix(label, " m") {
		t.Fatalf("expected meter label, got %q", label)
	}
}

func TestAreaLabelSquareKilometers(t *testing.T) {
	a := LonLatToMercator(0, 0)
	b := LonLatToMercator(1, 0)
	c := LonLatToMercator(1, 1)
	d := LonLatToMercator(0, 1)
	poly := orb.Polygon{orb.Ring{a, b, c, d, a}}
	label := AreaLabel(poly)
	if !strings.HasSuffix(label, " km²") {
		t.Fatalf("expected km² label, got %q", label)
	}
}

func TestAreaLabelSquareMeters(t *testing.T) {
	poly := orb.Polygon{orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	label := AreaLabel(poly)
	if !strings.HasSuffix(label, " m²") {
		t.Fatalf("expected m² label, got %q", label)
	}
}
