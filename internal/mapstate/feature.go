// Package mapstate owns the in-memory mirror of rendered map entities. The
// feature collections are always a projection of the last successful fetch;
// every mutation triggers a full rebuild rather than incremental patching.
package mapstate

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/paulmach/orb"
)

// Style holds the display attributes of a rendered feature.
type Style struct {
	Icon        string  // marker icon path for points
	Fill        string  // CSS rgba() fill for shapes
	Stroke      string  // outline color
	StrokeWidth float64 // outline width
}

// Feature is the render-side mirror of one persisted entity. ID 0 marks a
// local, not-yet-persisted feature.
type Feature struct {
	ID       int64
	Label    string
	Geometry orb.Geometry
	Style    Style
}

// Collection is an ordered, concurrency-safe feature collection.
type Collection struct {
	mu       sync.RWMutex
	features []Feature
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a feature.
func (c *Collection) Add(f Feature) {
	c.mu.Lock()
	c.features = append(c.features, f)
	c.mu.Unlock()
}

// Clear removes every feature.
func (c *Collection) Clear() {
	c.mu.Lock()
	c.features = nil
	c.mu.Unlock()
}

// Len returns the number of features.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.features)
}

// All returns a snapshot of the features in insertion order.
func (c *Collection) All() []Feature {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// ByID returns the first feature with the given identity.
func (c *Collection) ByID(id int64) (Feature, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// Move repositions a point feature in place and reports whether it existed.
func (c *Collection) Move(id int64, x, y float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.features {
		if f.ID == id {
			c.features[i].Geometry = orb.Point{x, y}
			return true
		}
	}
	return false
}

// markerStyle is the pin style applied to every point feature.
func markerStyle() Style {
	return Style{Icon: "/static/assets/location-pin.png"}
}

// shapeStyle derives a shape's style from its stored color: semi-transparent
// fill, black outline.
func shapeStyle(hex string) Style {
	if hex == "" {
		hex = "#ff0000"
	}
	return Style{
		Fill:        fmt.Sprintf("rgba(%s, 0.5)", hexToRGB(hex)),
		Stroke:      "#000000",
		StrokeWidth: 2,
	}
}

// hexToRGB converts "#rrggbb" to "r, g, b". Malformed input yields "0, 0, 0".
func hexToRGB(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return "0, 0, 0"
	}
	return fmt.Sprintf("%d, %d, %d", (v>>16)&255, (v>>8)&255, v&255)
}
