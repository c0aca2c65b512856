package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mapmark/mapmark/internal/interaction"
)

func (s *Server) registerMapEvents() {
	huma.Post(s.humaAPI, "/ui/map/click", s.mapClick, huma.OperationTags("map"))
	huma.Post(s.humaAPI, "/ui/map/drawend", s.mapDrawEnd, huma.OperationTags("map"))
	huma.Post(s.humaAPI, "/ui/map/moveend", s.mapMoveEnd, huma.OperationTags("map"))
	huma.Post(s.humaAPI, "/ui/refresh", s.refresh, huma.OperationTags("map"))
}

// mapClick handles a click on the map surface. Consumed only by the
// add-point mode; otherwise a no-op.
func (s *Server) mapClick(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	x, y := signals.Float("x"), signals.Float("y")

	return stream(func(sse SSE) {
		if s.modes.MapClick(x, y) {
			s.patchMarkers(sse)
		}
	}), nil
}

// mapDrawEnd handles a completed draw gesture: geometry type plus the vertex
// list in projected coordinates.
func (s *Server) mapDrawEnd(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	gesture := interaction.DrawGesture{
		Type:     signals.String("type"),
		Vertices: signals.Points("vertices"),
	}

	return stream(func(sse SSE) {
		if err := s.modes.DrawEnd(gesture); err != nil {
			s.log.Warn("draw gesture failed", "type", gesture.Type, "err", err)
		}
		s.patchShapes(sse)
		s.patchMeasure(sse)
	}), nil
}

// mapMoveEnd handles a drag completion on a point feature.
func (s *Server) mapMoveEnd(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	id := signals.Int64("id")
	x, y := signals.Float("x"), signals.Float("y")

	return stream(func(sse SSE) {
		if err := s.modes.MoveEnd(id, x, y); err != nil {
			s.log.Warn("move update failed", "id", id, "err", err)
		}
		s.patchMarkers(sse)
	}), nil
}

// refresh rebuilds both feature collections from the remote API and
// re-renders the lists.
func (s *Server) refresh(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		if err := s.store.Refresh(ctx); err != nil {
			s.log.Warn("refresh failed", "err", err)
		}
		s.patchMarkers(sse)
		s.patchShapes(sse)
	}), nil
}

func (s *Server) patchMarkers(sse SSE) {
	html, err := s.renderer.Render("marker-list", map[string]any{"Markers": s.store.Markers.All()})
	if err != nil {
		s.log.Error("render markers", "err", err)
		return
	}
	sse.Patch(html, "#marker-list")
}

func (s *Server) patchShapes(sse SSE) {
	html, err := s.renderer.Render("shape-list", map[string]any{"Shapes": s.store.Shapes.All()})
	if err != nil {
		s.log.Error("render shapes", "err", err)
		return
	}
	sse.Patch(html, "#shape-list")
}

func (s *Server) patchMeasure(sse SSE) {
	html, err := s.renderer.Render("measure-list", map[string]any{"Measure": s.store.Measure.All()})
	if err != nil {
		s.log.Error("render measurements", "err", err)
		return
	}
	sse.Patch(html, "#measure-list")
}
