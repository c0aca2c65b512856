// Package preview builds static map image URLs for drawn shapes. The image
// itself is rendered by the external style provider; this package only
// templates the request URL with URL-encoded GeoJSON.
package preview

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mapmark/mapmark/internal/geomath"
)

const (
	defaultStyleBase   = "https://api.mapbox.com/styles/v1/mapbox/streets-v12/static/geojson("
	defaultBeforeLayer = "admin-0-boundary-bg"
	defaultWidth       = 300
	defaultHeight      = 200
)

// Builder templates static preview URLs for polygon shapes.
type Builder struct {
	styleBase   string
	beforeLayer string
	accessToken string
	width       int
	height      int
}

// NewBuilder creates a preview builder for the given provider access token.
func NewBuilder(accessToken string) *Builder {
	return &Builder{
		styleBase:   defaultStyleBase,
		beforeLayer: defaultBeforeLayer,
		accessToken: accessToken,
		width:       defaultWidth,
		height:      defaultHeight,
	}
}

// PolygonURL returns the static image URL for a polygon ring drawn in
// projected map coordinates. The overlay is a FeatureCollection holding a
// semi-transparent fill and a red outline, in geographic coordinates.
func (b *Builder) PolygonURL(ring orb.Ring) (string, error) {
	geographic := geomath.RingToLonLat(ring)

	fill := geojson.NewFeature(orb.Polygon{geographic})
	fill.Properties = geojson.Properties{
		"fill":         "#ffffff",
		"fill-opacity": 0.5,
	}

	outline := geojson.NewFeature(orb.LineString(geographic))
	outline.Properties = geojson.Properties{
		"stroke":       "#ff0000",
		"stroke-width": 2,
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(fill)
	fc.Append(outline)

	payload, err := json.Marshal(fc)
	if err != nil {
		return "", fmt.Errorf("encoding preview overlay: %w", err)
	}

	return fmt.Sprintf("%s%s)/auto/%dx%d?before_layer=%s&access_token=%s",
		b.styleBase, url.QueryEscape(string(payload)),
		b.width, b.height, b.beforeLayer, b.accessToken), nil
}
