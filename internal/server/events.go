package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mapmark/mapmark/internal/notify"
)

func (s *Server) registerEvents() {
	huma.Get(s.humaAPI, "/ui/events", s.events, huma.OperationTags("ui"))
}

// events is the long-lived SSE stream. Toasts and store changes published on
// the bus are turned into page patches until the client disconnects.
func (s *Server) events(ctx context.Context, input *EmptyInput) (*huma.StreamResponse, error) {
	return stream(func(sse SSE) {
		ch := s.bus.Subscribe()
		defer s.bus.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				switch ev.Kind {
				case notify.KindToast:
					s.patchToast(sse, ev)
				case notify.KindStore:
					switch ev.Resource {
					case "points":
						s.patchMarkers(sse)
					case "shapes":
						s.patchShapes(sse)
					case "measure":
						s.patchMeasure(sse)
					}
				}
			}
		}
	}), nil
}

func (s *Server) patchToast(sse SSE, ev notify.Event) {
	html, err := s.renderer.Render("toast", map[string]any{
		"Level":   string(ev.Level),
		"Message": ev.Message,
		"Detail":  ev.Detail,
	})
	if err != nil {
		s.log.Error("render toast", "err", err)
		return
	}
	sse.Patch(html, "#toasts")
}
