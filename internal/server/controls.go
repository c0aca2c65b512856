package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mapmark/mapmark/internal/interaction"
)

// ToggleModeInput selects an interaction mode from the side controls.
type ToggleModeInput struct {
	Mode string `path:"mode" doc:"Interaction mode to toggle"`
}

func (s *Server) registerControls() {
	huma.Post(s.humaAPI, "/ui/mode/{mode}", s.toggleMode, huma.OperationTags("ui"))
	huma.Post(s.humaAPI, "/ui/mode-off", s.deactivateMode, huma.OperationTags("ui"))
}

func (s *Server) toggleMode(ctx context.Context, input *ToggleModeInput) (*huma.StreamResponse, error) {
	mode := interaction.Mode(input.Mode)
	if !mode.Valid() {
		return nil, huma.Error400BadRequest("Unknown interaction mode: " + input.Mode)
	}

	return stream(func(sse SSE) {
		active := s.modes.Toggle(mode)
		s.patchControls(sse, active)
	}), nil
}

func (s *Server) deactivateMode(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		s.modes.Deactivate()
		s.patchControls(sse, s.modes.Mode())
	}), nil
}

// patchControls re-renders the side controls and publishes the active mode
// signal the map surface keys its gesture reporting on.
func (s *Server) patchControls(sse SSE, active interaction.Mode) {
	html, err := s.renderer.Render("controls", map[string]any{"Mode": active})
	if err != nil {
		s.log.Error("render controls", "err", err)
		return
	}
	sse.Patch(html, "#side-controls")
	sse.Signals(map[string]any{"mode": string(active)})
}
