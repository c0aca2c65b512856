package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mapmark/mapmark/internal/panel"
)

// FeatureInput addresses one feature by id.
type FeatureInput struct {
	ID int64 `path:"id" doc:"Feature identifier"`
}

func (s *Server) registerPanels() {
	huma.Post(s.humaAPI, "/ui/panel/point/{id}", s.openPointPanel, huma.OperationTags("panel"))
	huma.Post(s.humaAPI, "/ui/panel/shape/{id}", s.openShapePanel, huma.OperationTags("panel"))
	huma.Post(s.humaAPI, "/ui/panel/submit", s.submitPanel, huma.OperationTags("panel"))
	huma.Post(s.humaAPI, "/ui/panel/close", s.closePanel, huma.OperationTags("panel"))

	huma.Post(s.humaAPI, "/ui/point/{id}/view", s.viewPoint, huma.OperationTags("features"))
	huma.Post(s.humaAPI, "/ui/point/{id}/delete", s.deletePoint, huma.OperationTags("features"))
	huma.Post(s.humaAPI, "/ui/shape/{id}/delete", s.deleteShape, huma.OperationTags("features"))
}

func (s *Server) openPointPanel(ctx context.Context, input *FeatureInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		form, err := s.panel.OpenPoint(ctx, input.ID)
		if err != nil {
			s.log.Warn("open point panel", "id", input.ID, "err", err)
			return
		}
		s.patchPanel(sse, form)
	}), nil
}

func (s *Server) openShapePanel(ctx context.Context, input *FeatureInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		form, err := s.panel.OpenShape(ctx, input.ID)
		if err != nil {
			s.log.Warn("open shape panel", "id", input.ID, "err", err)
			return
		}
		s.patchPanel(sse, form)
	}), nil
}

// submitPanel routes the edit form to the matching update flow. The form
// fields arrive as Datastar signals bound to the panel inputs.
func (s *Server) submitPanel(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}

	open := s.panel.Current()
	if open == nil {
		return nil, huma.Error400BadRequest("No panel is open")
	}

	return stream(func(sse SSE) {
		var submitErr error
		switch open.Kind {
		case panel.KindPoint:
			submitErr = s.panel.SubmitPoint(ctx, open.ID,
				signals.Float("panelx"), signals.Float("panely"), signals.String("panelname"))
		case panel.KindShape:
			submitErr = s.panel.SubmitShape(ctx, open.ID,
				signals.String("panelname"), signals.String("paneldescription"), signals.String("panelcolor"))
		}
		if submitErr != nil {
			s.log.Warn("panel submit failed", "kind", open.Kind, "id", open.ID, "err", submitErr)
		}
		s.patchPanel(sse, s.panel.Current())
		s.patchMarkers(sse)
		s.patchShapes(sse)
	}), nil
}

func (s *Server) closePanel(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		s.panel.Close()
		s.patchPanel(sse, nil)
	}), nil
}

// viewPoint centers the map on a feature via a signal; the map surface
// animates to the coordinates.
func (s *Server) viewPoint(ctx context.Context, input *FeatureInput) (*huma.StreamResponse, error) {
	f, ok := s.store.Markers.ByID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("Unknown point")
	}
	pt := f.Geometry.Bound().Min

	return stream(func(sse SSE) {
		sse.Signals(map[string]any{"centerx": pt[0], "centery": pt[1]})
	}), nil
}

func (s *Server) deletePoint(ctx context.Context, input *FeatureInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		if err := s.panel.DeletePoint(ctx, input.ID); err != nil {
			s.log.Warn("delete point", "id", input.ID, "err", err)
		}
		s.patchMarkers(sse)
	}), nil
}

func (s *Server) deleteShape(ctx context.Context, input *FeatureInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		if err := s.panel.DeleteShape(ctx, input.ID); err != nil {
			s.log.Warn("delete shape", "id", input.ID, "err", err)
		}
		s.patchShapes(sse)
	}), nil
}

func (s *Server) patchPanel(sse SSE, form *panel.Form) {
	html, err := s.renderer.Render("edit-panel", map[string]any{"Form": form})
	if err != nil {
		s.log.Error("render panel", "err", err)
		return
	}
	sse.Patch(html, "#edit-panel")
	if form != nil {
		sse.Signals(map[string]any{
			"panelx":           form.X,
			"panely":           form.Y,
			"panelname":        form.Name,
			"paneldescription": form.Description,
			"panelcolor":       form.Color,
		})
	}
}
