package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

// TabInput addresses one tab.
type TabInput struct {
	ID string `path:"id" doc:"Tab identifier"`
}

func (s *Server) registerTabs() {
	huma.Post(s.humaAPI, "/ui/tabs", s.createTab, huma.OperationTags("tabs"))
	huma.Post(s.humaAPI, "/ui/tabs/{id}/rename", s.renameTab, huma.OperationTags("tabs"))
	huma.Post(s.humaAPI, "/ui/tabs/{id}/recolor", s.recolorTab, huma.OperationTags("tabs"))
	huma.Delete(s.humaAPI, "/ui/tabs/{id}", s.deleteTab, huma.OperationTags("tabs"))
}

func (s *Server) createTab(ctx context.Context, input *SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.MustParse()
	if err != nil {
		return nil, err
	}
	name, color := signals.String("tabname"), signals.String("tabcolor")

	return stream(func(sse SSE) {
		if _, err := s.tabs.Create(name, color); err != nil {
			sse.Signals(map[string]any{"taberror": err.Error()})
			return
		}
		s.patchTabs(sse)
	}), nil
}

type tabSignalsInput struct {
	ID      string `path:"id" doc:"Tab identifier"`
	RawBody []byte
}

func (s *Server) renameTab(ctx context.Context, input *tabSignalsInput) (*huma.StreamResponse, error) {
	signals, err := ParseSignals(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid request data: " + err.Error())
	}
	name := signals.String("tabname")
	if name == "" {
		return nil, huma.Error400BadRequest("Tab name is required")
	}

	return stream(func(sse SSE) {
		if _, err := s.tabs.Rename(input.ID, name); err != nil {
			sse.Signals(map[string]any{"taberror": err.Error()})
			return
		}
		s.patchTabs(sse)
	}), nil
}

func (s *Server) recolorTab(ctx context.Context, input *tabSignalsInput) (*huma.StreamResponse, error) {
	signals, err := ParseSignals(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid request data: " + err.Error())
	}
	color := signals.String("tabcolor")
	if color == "" {
		return nil, huma.Error400BadRequest("Tab color is required")
	}

	return stream(func(sse SSE) {
		if _, err := s.tabs.Recolor(input.ID, color); err != nil {
			sse.Signals(map[string]any{"taberror": err.Error()})
			return
		}
		s.patchTabs(sse)
	}), nil
}

func (s *Server) deleteTab(ctx context.Context, input *TabInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		if err := s.tabs.Delete(input.ID); err != nil {
			sse.Signals(map[string]any{"taberror": err.Error()})
			return
		}
		s.patchTabs(sse)
	}), nil
}

func (s *Server) patchTabs(sse SSE) {
	html, err := s.renderer.Render("tab-bar", map[string]any{"Tabs": s.tabs.List()})
	if err != nil {
		s.log.Error("render tabs", "err", err)
		return
	}
	sse.Patch(html, "#tab-bar")
}
