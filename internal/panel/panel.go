// Package panel manages the floating edit form for a single point or shape.
// At most one panel is open; opening another closes the current one first.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/mapstate"
	"github.com/mapmark/mapmark/internal/notify"
	"github.com/mapmark/mapmark/internal/preview"
)

// Kind discriminates the open panel's subject.
type Kind string

const (
	KindPoint Kind = "point"
	KindShape Kind = "shape"
)

// Form holds the editable fields of the open panel, seeded from a fresh
// fetch of the subject entity.
type Form struct {
	Kind Kind
	ID   int64

	// point fields
	X    float64
	Y    float64
	Name string

	// shape fields
	Description string
	Color       string
	WKT         string
}

// Manager owns the single open panel and its submit flows.
type Manager struct {
	mu   sync.Mutex
	open *Form

	gw       *gateway.Client
	store    *mapstate.Store
	bus      *notify.Bus
	previews *preview.Builder
	log      *slog.Logger
}

// NewManager creates a manager with no open panel.
func NewManager(gw *gateway.Client, store *mapstate.Store, bus *notify.Bus, previews *preview.Builder, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{gw: gw, store: store, bus: bus, previews: previews, log: log}
}

// Current returns a copy of the open form, or nil when no panel is open.
func (m *Manager) Current() *Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == nil {
		return nil
	}
	f := *m.open
	return &f
}

// Close dismisses the open panel, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	m.open = nil
	m.mu.Unlock()
}

// OpenPoint fetches the point and opens its edit panel, replacing any panel
// already open.
func (m *Manager) OpenPoint(ctx context.Context, id int64) (*Form, error) {
	p, err := m.gw.PointByID(ctx, id)
	if err != nil {
		m.bus.Toast(notify.LevelError, "Could not load the point", err.Error())
		return nil, err
	}
	if p == nil {
		return nil, gateway.ErrNoCredential
	}
	f := &Form{Kind: KindPoint, ID: p.ID, X: p.X, Y: p.Y, Name: p.Name}
	m.mu.Lock()
	m.open = f
	m.mu.Unlock()
	out := *f
	return &out, nil
}

// OpenShape fetches the shape and opens its edit panel, replacing any panel
// already open. The current WKT is kept on the form so the submit flow can
// regenerate the preview.
func (m *Manager) OpenShape(ctx context.Context, id int64) (*Form, error) {
	sh, err := m.gw.ShapeByID(ctx, id)
	if err != nil {
		m.bus.Toast(notify.LevelError, "Could not load the shape", err.Error())
		return nil, err
	}
	if sh == nil {
		return nil, gateway.ErrNoCredential
	}
	f := &Form{
		Kind:        KindShape,
		ID:          sh.ID,
		Name:        sh.Name,
		Description: sh.Description,
		Color:       sh.Color,
		WKT:         sh.WKT,
	}
	m.mu.Lock()
	m.open = f
	m.mu.Unlock()
	out := *f
	return &out, nil
}

// SubmitPoint pushes the edited coordinates and name, then refreshes the
// store so the map reflects the update.
func (m *Manager) SubmitPoint(ctx context.Context, id int64, x, y float64, name string) error {
	if _, err := m.gw.UpdatePoint(ctx, id, x, y, name); err != nil {
		m.bus.Toast(notify.LevelError, "An error occurred updating the point", err.Error())
		return err
	}
	m.bus.Toast(notify.LevelSuccess, "Successfully updated the point", "")
	m.Close()
	return m.store.Refresh(ctx)
}

// SubmitShape pushes the edited name, description and color. The shape's
// geometry is unchanged but its preview is regenerated so the stored image
// matches the stored attributes.
func (m *Manager) SubmitShape(ctx context.Context, id int64, name, description, color string) error {
	m.mu.Lock()
	var shapeWKT string
	if m.open != nil && m.open.Kind == KindShape && m.open.ID == id {
		shapeWKT = m.open.WKT
	}
	m.mu.Unlock()

	if shapeWKT == "" {
		sh, err := m.gw.ShapeByID(ctx, id)
		if err != nil {
			m.bus.Toast(notify.LevelError, "Error updating shape", err.Error())
			return err
		}
		if sh == nil {
			return gateway.ErrNoCredential
		}
		shapeWKT = sh.WKT
	}

	photo, err := m.previewFor(shapeWKT)
	if err != nil {
		m.bus.Toast(notify.LevelError, "Error updating shape", err.Error())
		return err
	}

	resp, err := m.gw.UpdateShape(ctx, id, gateway.ShapeDraft{
		Name:          name,
		Description:   description,
		Color:         color,
		WKT:           shapeWKT,
		PhotoLocation: photo,
		Date:          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		m.bus.Toast(notify.LevelError, "Error updating shape", err.Error())
		return err
	}
	if !resp.Success {
		m.bus.Toast(notify.LevelError, "Error updating shape", resp.ResponseMessage)
		return fmt.Errorf("panel: shape update rejected: %s", resp.ResponseMessage)
	}

	m.bus.Toast(notify.LevelSuccess, "Shape updated successfully", resp.ResponseMessage)
	m.Close()
	return m.store.Refresh(ctx)
}

// DeletePoint removes the point and refreshes, closing its panel if open.
func (m *Manager) DeletePoint(ctx context.Context, id int64) error {
	if _, err := m.gw.DeletePoint(ctx, id); err != nil {
		m.bus.Toast(notify.LevelError, "An error occurred deleting the point", err.Error())
		return err
	}
	m.bus.Toast(notify.LevelSuccess, "Successfully deleted the point", "")
	m.closeIf(KindPoint, id)
	return m.store.Refresh(ctx)
}

// DeleteShape removes the shape and refreshes, closing its panel if open.
func (m *Manager) DeleteShape(ctx context.Context, id int64) error {
	if _, err := m.gw.DeleteShape(ctx, id); err != nil {
		m.bus.Toast(notify.LevelError, "Error deleting shape", err.Error())
		return err
	}
	m.bus.Toast(notify.LevelSuccess, "Shape deleted successfully", "")
	m.closeIf(KindShape, id)
	return m.store.Refresh(ctx)
}

func (m *Manager) closeIf(kind Kind, id int64) {
	m.mu.Lock()
	if m.open != nil && m.open.Kind == kind && m.open.ID == id {
		m.open = nil
	}
	m.mu.Unlock()
}

// previewFor rebuilds the static preview URL from the shape's WKT polygon.
func (m *Manager) previewFor(shapeWKT string) (string, error) {
	geom, err := wkt.Unmarshal(shapeWKT)
	if err != nil {
		return "", fmt.Errorf("panel: parse shape geometry: %w", err)
	}
	poly, ok := geom.(orb.Polygon)
	if !ok || len(poly) == 0 {
		return "", fmt.Errorf("panel: shape geometry is not a polygon")
	}
	return m.previews.PolygonURL(poly[0])
}
