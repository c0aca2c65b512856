// Package interaction owns the exclusive map-editing modes and binds gesture
// events to their handlers. At most one mode's bindings are active at a time;
// activating a mode always tears the previous one down first.
package interaction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/mapstate"
	"github.com/mapmark/mapmark/internal/notify"
	"github.com/mapmark/mapmark/internal/preview"
)

// Mode is an exclusive map-editing tool.
type Mode string

const (
	ModeIdle            Mode = "idle"
	ModeAddPoint        Mode = "add-point"
	ModeDragUpdate      Mode = "drag-update"
	ModeDrawPolygon     Mode = "draw-polygon"
	ModeDrawCircle      Mode = "draw-circle"
	ModeDrawLineString  Mode = "draw-linestring"
	ModeMeasureDistance Mode = "measure-distance"
	ModeMeasureArea     Mode = "measure-area"
)

// displayNames feed the activation toasts.
var displayNames = map[Mode]string{
	ModeAddPoint:        "Add Point",
	ModeDragUpdate:      "Drag And Update",
	ModeDrawPolygon:     "Draw Polygon",
	ModeDrawCircle:      "Draw Circle",
	ModeDrawLineString:  "Draw Line String",
	ModeMeasureDistance: "Distance Measure",
	ModeMeasureArea:     "Measure Area",
}

// DisplayName returns the human-readable mode name.
func (m Mode) DisplayName() string {
	if n, ok := displayNames[m]; ok {
		return n
	}
	return string(m)
}

// Valid reports whether m names a selectable mode.
func (m Mode) Valid() bool {
	_, ok := displayNames[m]
	return ok
}

// Controller is the interaction-mode state machine. Each active mode owns a
// cancellation scope; deactivation cancels it so in-flight requests started
// by the mode are abandoned.
type Controller struct {
	mu     sync.Mutex
	mode   Mode
	ctx    context.Context
	cancel context.CancelFunc

	store    *mapstate.Store
	gw       *gateway.Client
	bus      *notify.Bus
	previews *preview.Builder
	log      *slog.Logger
}

// NewController creates a controller in the Idle state.
func NewController(store *mapstate.Store, gw *gateway.Client, bus *notify.Bus, previews *preview.Builder, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		mode:     ModeIdle,
		store:    store,
		gw:       gw,
		bus:      bus,
		previews: previews,
		log:      log,
	}
}

// Mode returns the currently active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle selects a mode. Selecting the active mode returns to Idle; selecting
// another tears down the current bindings before installing the new ones.
// The resulting mode is returned.
func (c *Controller) Toggle(mode Mode) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.teardownLocked()
	if c.mode == mode {
		c.mode = ModeIdle
		return c.mode
	}

	c.mode = mode
	if mode != ModeIdle {
		c.ctx, c.cancel = context.WithCancel(context.Background())
		c.bus.Toast(notify.LevelInfo, mode.DisplayName()+" Mode Activated", "")
	}
	return c.mode
}

// Deactivate unconditionally returns to Idle.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.mode = ModeIdle
}

// teardownLocked cancels the active mode's scope. Must hold c.mu.
func (c *Controller) teardownLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.ctx = nil
	}
}

// scope returns the active mode and its cancellation context. Idle has no
// scope; events arriving then are ignored.
func (c *Controller) scope() (context.Context, Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background(), c.mode
	}
	return c.ctx, c.mode
}
