// Package tabs manages the bottom tab bar: a small ordered set of named,
// colored tabs persisted as JSON on disk.
package tabs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// MaxTabs caps the tab bar.
const MaxTabs = 5

// Tab is one tab bar entry.
type Tab struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Service manages the tab list and its persistence.
type Service struct {
	dataDir string
	tabs    []Tab
	mu      sync.RWMutex
}

// NewService creates a tab service, loading any persisted tabs.
func NewService(dataDir string) *Service {
	s := &Service{dataDir: dataDir}
	s.loadFromDisk()
	return s
}

// List returns the tabs in display order.
func (s *Service) List() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Get returns a tab by ID.
func (s *Service) Get(id string) (Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// Create appends a new tab. The bar holds at most MaxTabs entries.
func (s *Service) Create(name, color string) (Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tabs) >= MaxTabs {
		return Tab{}, fmt.Errorf("tab bar is full (max %d)", MaxTabs)
	}
	if name == "" {
		name = fmt.Sprintf("Tab %d", len(s.tabs)+1)
	}
	if color == "" {
		color = "#ffffff"
	}

	tab := Tab{ID: uuid.NewString(), Name: name, Color: color}
	s.tabs = append(s.tabs, tab)
	if err := s.saveToDisk(); err != nil {
		s.tabs = s.tabs[:len(s.tabs)-1]
		return Tab{}, err
	}
	return tab, nil
}

// Rename changes a tab's display name.
func (s *Service) Rename(id, name string) (Tab, error) {
	return s.update(id, func(t *Tab) { t.Name = name })
}

// Recolor changes a tab's color.
func (s *Service) Recolor(id, color string) (Tab, error) {
	return s.update(id, func(t *Tab) { t.Color = color })
}

func (s *Service) update(id string, apply func(*Tab)) (Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tabs {
		if s.tabs[i].ID == id {
			apply(&s.tabs[i])
			if err := s.saveToDisk(); err != nil {
				return Tab{}, err
			}
			return s.tabs[i], nil
		}
	}
	return Tab{}, fmt.Errorf("tab %q not found", id)
}

// Delete removes a tab by ID.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tabs {
		if s.tabs[i].ID == id {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			return s.saveToDisk()
		}
	}
	return fmt.Errorf("tab %q not found", id)
}

// configFile returns the path to the tabs file.
func (s *Service) configFile() string {
	return filepath.Join(s.dataDir, "tabs.json")
}

// loadFromDisk loads the persisted tab list.
func (s *Service) loadFromDisk() {
	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return // File doesn't exist yet, start empty
	}

	var tabs []Tab
	if err := json.Unmarshal(data, &tabs); err != nil {
		return // Invalid JSON, start empty
	}
	if len(tabs) > MaxTabs {
		tabs = tabs[:MaxTabs]
	}
	s.tabs = tabs
}

// saveToDisk persists the tab list.
func (s *Service) saveToDisk() error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.tabs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.configFile(), data, 0644)
}
