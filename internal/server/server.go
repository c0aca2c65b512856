// Package server wires the map UI: full pages over html/template, a Huma
// API surface, and Datastar SSE handlers that patch the page as the
// underlying state changes.
package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/mapmark/mapmark/internal/gateway"
	"github.com/mapmark/mapmark/internal/interaction"
	"github.com/mapmark/mapmark/internal/mapstate"
	"github.com/mapmark/mapmark/internal/notify"
	"github.com/mapmark/mapmark/internal/panel"
	"github.com/mapmark/mapmark/internal/preview"
	"github.com/mapmark/mapmark/internal/tabs"
	"github.com/mapmark/mapmark/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host         string
	Port         string
	APIBase      string // base URL of the remote data API, e.g. http://localhost:5000/api
	DataDir      string
	WebDir       string // path to web/ for static files and templates
	PreviewToken string // access token for static map previews
}

// Server is the map UI HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	log      *slog.Logger
	renderer *templates.Renderer

	gw    *gateway.Client
	store *mapstate.Store
	modes *interaction.Controller
	panel *panel.Manager
	tabs  *tabs.Service
	bus   *notify.Bus
}

// New creates the map server and registers all routes.
func New(cfg Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("mapmark API", "1.0.0")
	humaConfig.Info.Description = "Server-driven map annotation UI over a remote spatial data API."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}

	humaAPI := humago.New(mux, humaConfig)

	renderer, err := templates.New(filepath.Join(cfg.WebDir, "templates"))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	creds := gateway.NewCredentialStore(filepath.Join(cfg.DataDir, "token"))
	gw := gateway.New(cfg.APIBase, creds, log)
	bus := notify.NewBus()
	store := mapstate.NewStore(gw, bus, log)
	previews := preview.NewBuilder(cfg.PreviewToken)

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		log:      log,
		renderer: renderer,
		gw:       gw,
		store:    store,
		modes:    interaction.NewController(store, gw, bus, previews, log),
		panel:    panel.NewManager(gw, store, bus, previews, log),
		tabs:     tabs.NewService(cfg.DataDir),
		bus:      bus,
	}

	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// OpenAPI exposes the generated API document, used by the CLI spec export.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

func (s *Server) routes() {
	s.registerSession()
	s.registerControls()
	s.registerMapEvents()
	s.registerPalette()
	s.registerPanels()
	s.registerTabs()
	s.registerEvents()

	// Static files
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	// Page routes
	s.mux.HandleFunc("/login", s.handleLoginPage)
	s.mux.HandleFunc("/", s.handleMapPage)
}

// authed reports whether a usable credential is stored.
func (s *Server) authed() bool {
	_, ok := s.gw.Credentials().OwnerID()
	return ok
}

func (s *Server) handleMapPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !s.authed() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.store.Refresh(r.Context()); err != nil {
		s.log.Warn("initial refresh failed", "err", err)
	}

	var buf bytes.Buffer
	err := s.renderer.Page(&buf, "map.html", map[string]any{
		"Markers": s.store.Markers.All(),
		"Shapes":  s.store.Shapes.All(),
		"Tabs":    s.tabs.List(),
		"Mode":    s.modes.Mode(),
	})
	if err != nil {
		s.log.Error("render map page", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleLoginSubmit(w, r)
		return
	}
	if s.authed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderLogin(w, "")
}

func (s *Server) renderLogin(w http.ResponseWriter, errMsg string) {
	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, "login.html", map[string]any{"Error": errMsg}); err != nil {
		s.log.Error("render login page", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
