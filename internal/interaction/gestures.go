package interaction

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/geomath"
	"github.com/mapmark/mapmark/internal/mapstate"
	"github.com/mapmark/mapmark/internal/notify"
)

// DrawGesture is a completed draw gesture reported by the map surface, with
// vertices in projected map coordinates. For circles the first vertex is the
// center.
type DrawGesture struct {
	Type     string // "Polygon", "Circle" or "LineString"
	Vertices []orb.Point
}

// MapClick handles a map click. Only the add-point mode consumes clicks; the
// created marker is visual-only until persisted elsewhere.
func (c *Controller) MapClick(x, y float64) bool {
	_, mode := c.scope()
	if mode != ModeAddPoint {
		return false
	}
	c.store.AddLocalMarker(x, y)
	return true
}

// MoveEnd handles a drag completion on an existing point feature: the point
// is updated remotely with its new coordinates and preserved name. The local
// position is not rolled back when the update fails.
func (c *Controller) MoveEnd(id int64, x, y float64) error {
	ctx, mode := c.scope()
	if mode != ModeDragUpdate {
		return nil
	}

	feature, ok := c.store.Markers.ByID(id)
	if !ok {
		return fmt.Errorf("interaction: unknown point feature %d", id)
	}
	c.store.MoveMarker(id, x, y)

	updated, err := c.gw.UpdatePoint(ctx, id, x, y, feature.Label)
	if err != nil {
		c.bus.Toast(notify.LevelError, "An error occurred updating the point", err.Error())
		return err
	}
	c.bus.Toast(notify.LevelSuccess, "Successfully updated the point",
		fmt.Sprintf("id %d moved to (%v, %v)", updated.ID, updated.X, updated.Y))
	return nil
}

// DrawEnd handles a completed draw gesture in the active mode. Drawing modes
// persist polygons; measure modes only produce labels.
func (c *Controller) DrawEnd(g DrawGesture) error {
	ctx, mode := c.scope()
	switch mode {
	case ModeDrawPolygon, ModeDrawCircle, ModeDrawLineString:
		return c.finishDraw(ctx, g)
	case ModeMeasureDistance, ModeMeasureArea:
		c.finishMeasure(g)
		return nil
	default:
		return nil
	}
}

// finishDraw serializes the drawn geometry, requests a static preview and
// submits a shape-create request. Failures surface as error toasts and are
// returned so callers can react.
func (c *Controller) finishDraw(ctx context.Context, g DrawGesture) error {
	switch g.Type {
	case "Circle":
		// Circles have no WKT form; mirror the center and move on without
		// persisting.
		if len(g.Vertices) > 0 {
			c.log.Info("circle drawn", "center", fmt.Sprintf("CIRCLE(%v %v)", g.Vertices[0][0], g.Vertices[0][1]))
		}
		return nil
	case "Polygon":
		// handled below
	default:
		c.bus.Toast(notify.LevelError, "Unsupported geometry type: "+g.Type, "")
		return nil
	}

	if len(g.Vertices) < 3 {
		c.bus.Toast(notify.LevelError, "An error occurred while processing the geometry", "polygon needs at least three vertices")
		return fmt.Errorf("interaction: degenerate polygon with %d vertices", len(g.Vertices))
	}

	ring := closeRing(g.Vertices)
	shapeWKT := wkt.MarshalString(orb.Polygon{ring})

	photo, err := c.previews.PolygonURL(ring)
	if err != nil {
		c.bus.Toast(notify.LevelError, "An error occurred while processing the geometry", err.Error())
		return err
	}

	resp, err := c.gw.CreateShape(ctx, gateway.ShapeDraft{
		Name:          "Untitled shape",
		Description:   "Drawn on the map",
		WKT:           shapeWKT,
		PhotoLocation: photo,
		Date:          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		c.bus.Toast(notify.LevelError, "Error creating shape", err.Error())
		return err
	}
	if !resp.Success {
		c.bus.Toast(notify.LevelError, "Error creating shape", resp.ResponseMessage)
		return fmt.Errorf("interaction: shape create rejected: %s", resp.ResponseMessage)
	}

	c.bus.Toast(notify.LevelSuccess, "Shape created successfully", resp.ResponseMessage)
	return c.store.Refresh(ctx)
}

// finishMeasure renders a length or area label for the drawn geometry on the
// measurement overlay. Purely presentational.
func (c *Controller) finishMeasure(g DrawGesture) {
	_, mode := c.scope()

	var label string
	switch {
	case mode == ModeMeasureDistance && len(g.Vertices) >= 2:
		label = geomath.LengthLabel(orb.LineString(g.Vertices))
	case mode == ModeMeasureArea && len(g.Vertices) >= 3:
		label = geomath.AreaLabel(orb.Polygon{closeRing(g.Vertices)})
	default:
		return
	}

	c.store.Measure.Add(mapstate.Feature{
		Label:    label,
		Geometry: orb.LineString(g.Vertices),
	})
	c.bus.StoreChanged("measure")
}

// closeRing returns the vertices as a closed ring.
func closeRing(vertices []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
