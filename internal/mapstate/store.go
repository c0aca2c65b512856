package mapstate

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"golang.org/x/sync/singleflight"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/notify"
)

// Store holds the rendered feature collections and keeps them synchronized
// with the remote source of truth.
type Store struct {
	gw  *gateway.Client
	bus *notify.Bus
	log *slog.Logger

	Markers *Collection // point features
	Shapes  *Collection // WKT shape features
	Measure *Collection // measurement overlays, never persisted

	flight singleflight.Group
}

// NewStore creates a store over the given gateway.
func NewStore(gw *gateway.Client, bus *notify.Bus, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		gw:      gw,
		bus:     bus,
		log:     log,
		Markers: NewCollection(),
		Shapes:  NewCollection(),
		Measure: NewCollection(),
	}
}

// RebuildPoints clears the marker collection and reconstructs one feature per
// fetched point. A failed fetch leaves the collection empty.
func (s *Store) RebuildPoints(ctx context.Context) error {
	s.Markers.Clear()
	resp, err := s.gw.AllPoints(ctx)
	if err != nil {
		return err
	}
	for _, p := range resp.Points {
		s.Markers.Add(Feature{
			ID:       p.ID,
			Label:    p.Name,
			Geometry: orb.Point{p.X, p.Y},
			Style:    markerStyle(),
		})
	}
	s.bus.StoreChanged("points")
	return nil
}

// RebuildShapes clears the shape collection and reconstructs one feature per
// fetched shape from its WKT payload, applying the stored color as a
// semi-transparent fill. Shapes with unparseable geometry are skipped.
func (s *Store) RebuildShapes(ctx context.Context) error {
	s.Shapes.Clear()
	resp, err := s.gw.AllShapes(ctx)
	if err != nil {
		return err
	}
	for _, sh := range resp.Shapes {
		geom, err := wkt.Unmarshal(sh.WKT)
		if err != nil {
			s.log.Warn("skipping shape with bad geometry", "id", sh.ID, "err", err)
			continue
		}
		s.Shapes.Add(Feature{
			ID:       sh.ID,
			Label:    sh.Name,
			Geometry: geom,
			Style:    shapeStyle(sh.Color),
		})
	}
	s.bus.StoreChanged("shapes")
	return nil
}

// Refresh rebuilds both collections. Concurrent callers are coalesced into a
// single in-flight rebuild and share its result.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.flight.Do("refresh", func() (any, error) {
		if err := s.RebuildPoints(ctx); err != nil {
			return nil, err
		}
		return nil, s.RebuildShapes(ctx)
	})
	return err
}

// AddLocalMarker places a visual-only marker at the given coordinates. It is
// not persisted; the next refresh discards it.
func (s *Store) AddLocalMarker(x, y float64) Feature {
	f := Feature{
		Geometry: orb.Point{x, y},
		Style:    markerStyle(),
	}
	s.Markers.Add(f)
	s.bus.StoreChanged("points")
	return f
}

// MoveMarker mirrors a drag by repositioning the local feature. The position
// is not rolled back if the remote update later fails.
func (s *Store) MoveMarker(id int64, x, y float64) bool {
	moved := s.Markers.Move(id, x, y)
	if moved {
		s.bus.StoreChanged("points")
	}
	return moved
}
