package server

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/notify"
)

func (s *Server) registerPalette() {
	huma.Post(s.humaAPI, "/ui/palette/generate", s.paletteGenerate, huma.OperationTags("palette"))
	huma.Post(s.humaAPI, "/ui/palette/search", s.paletteSearch, huma.OperationTags("palette"))
	huma.Post(s.humaAPI, "/ui/palette/nearest", s.paletteNearest, huma.OperationTags("palette"))
	huma.Post(s.humaAPI, "/ui/palette/count", s.paletteCount, huma.OperationTags("palette"))
	huma.Post(s.humaAPI, "/ui/palette/distance", s.paletteDistance, huma.OperationTags("palette"))
}

// paletteGenerate asks the backend to bulk-generate points, then refreshes.
func (s *Server) paletteGenerate(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		resp, err := s.gw.GeneratePoints(ctx)
		if err != nil {
			s.bus.Toast(notify.LevelError, "Could not generate points", err.Error())
			return
		}
		s.bus.Toast(notify.LevelSuccess, "Points generated", resp.ResponseMessage)
		if err := s.store.Refresh(ctx); err != nil {
			s.log.Warn("refresh after generate failed", "err", err)
		}
		s.patchMarkers(sse)
	}), nil
}

// paletteSearch runs a bounded square search around the given coordinates
// and renders the result list.
func (s *Server) paletteSearch(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	x, y, rng := signals.Float("searchx"), signals.Float("searchy"), signals.Float("searchrange")

	return stream(func(sse SSE) {
		resp, err := s.gw.Search(ctx, x, y, rng)
		if err != nil {
			s.bus.Toast(notify.LevelError, "Search failed", err.Error())
			return
		}
		s.patchResults(sse, resp.Points)
	}), nil
}

// paletteNearest finds the point closest to the given coordinates.
func (s *Server) paletteNearest(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	x, y := signals.Float("nearestx"), signals.Float("nearesty")

	return stream(func(sse SSE) {
		resp, err := s.gw.NearestPoint(ctx, x, y)
		if err != nil {
			s.bus.Toast(notify.LevelError, "Nearest point lookup failed", err.Error())
			return
		}
		s.patchResults(sse, resp.Points)
	}), nil
}

// paletteCount reports how many points the owner has.
func (s *Server) paletteCount(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		count, err := s.gw.Count(ctx)
		if err != nil {
			s.bus.Toast(notify.LevelError, "Count failed", err.Error())
			return
		}
		sse.Signals(map[string]any{"pointcount": count})
		s.bus.Toast(notify.LevelInfo, fmt.Sprintf("You have %d points", count), "")
	}), nil
}

// paletteDistance reports the distance between two named points.
func (s *Server) paletteDistance(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	name1, name2 := signals.String("distancename1"), signals.String("distancename2")
	if name1 == "" || name2 == "" {
		return nil, huma.Error400BadRequest("Two point names are required")
	}

	return stream(func(sse SSE) {
		d, err := s.gw.Distance(ctx, name1, name2)
		if err != nil {
			s.bus.Toast(notify.LevelError, "Distance lookup failed", err.Error())
			return
		}
		sse.Signals(map[string]any{"distanceresult": d})
		s.bus.Toast(notify.LevelInfo, fmt.Sprintf("Distance between %s and %s: %.2f", name1, name2, d), "")
	}), nil
}

func (s *Server) patchResults(sse SSE, points []gateway.Point) {
	html, err := s.renderer.Render("result-list", map[string]any{"Points": points})
	if err != nil {
		s.log.Error("render results", "err", err)
		return
	}
	sse.Patch(html, "#result-list")
}
