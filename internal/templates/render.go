// Package templates handles HTML rendering: full pages and the fragments
// patched into the map UI over Datastar SSE.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"
	"sync"
)

// funcMap provides common template functions.
var funcMap = template.FuncMap{
	// dict creates a map from key-value pairs, useful for passing multiple values to nested templates
	"dict": func(values ...any) map[string]any {
		if len(values)%2 != 0 {
			return nil
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			m[key] = values[i+1]
		}
		return m
	},
	// coord renders a coordinate without float artifacts
	"coord": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	// fixed renders a float with two decimals
	"fixed": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
}

// Renderer manages page and fragment templates. Pages and fragments share
// one template set so pages can inline fragments on first render.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// New creates a renderer from a web templates directory containing page
// templates (*.html) and a fragments/ subdirectory.
func New(templatesDir string) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	tmpl, err = tmpl.ParseGlob(filepath.Join(templatesDir, "fragments", "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// Page renders a full page template to a buffer.
func (r *Renderer) Page(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates.ExecuteTemplate(buf, name, data)
}

// Render renders a named fragment to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named fragment to a buffer.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates.ExecuteTemplate(buf, name, data)
}

// MustRender renders a fragment and panics on error.
// Use only when you're certain the template exists.
func (r *Renderer) MustRender(name string, data any) string {
	s, err := r.Render(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

// Reload reloads templates from disk (useful for dev hot-reload).
func (r *Renderer) Reload(templatesDir string) error {
	fresh, err := New(templatesDir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = fresh.templates
	r.mu.Unlock()

	return nil
}
