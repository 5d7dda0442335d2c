package carousel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Workspace is the on-disk state of the admin console between invocations
type Workspace struct {
	Server         string    `yaml:"server"`
	Token          string    `yaml:"token,omitempty"`
	TokenExpiresAt time.Time `yaml:"tokenExpiresAt,omitempty"`
	State          State     `yaml:"state"`
	PulledAt       time.Time `yaml:"pulledAt,omitempty"`
	Snapshot       []Slide   `yaml:"snapshot"`
	Working        []Draft   `yaml:"working"`
}

// DefaultWorkspacePath is carousel.yaml under the user's config directory
func DefaultWorkspacePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "carousel.yaml"
	}
	return filepath.Join(dir, "storefront", "carousel.yaml")
}

// LoadWorkspace reads a workspace file. A missing file yields an empty workspace.
func LoadWorkspace(path string) (*Workspace, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Workspace{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}
	var ws Workspace
	if err := yaml.Unmarshal(b, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse workspace %s: %w", path, err)
	}
	return &ws, nil
}

// Save writes the workspace atomically. The file holds a token, so it is
// only readable by the owner.
func (w *Workspace) Save(path string) error {
	b, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode workspace: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".carousel-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write workspace: %w", err)
	}
	return nil
}

// TokenValid reports whether the stored token can still be used at now
func (w *Workspace) TokenValid(now time.Time) bool {
	return w.Token != "" && (w.TokenExpiresAt.IsZero() || now.Before(w.TokenExpiresAt))
}

// RestoreManager rebuilds a Manager from a workspace. A workspace left in the
// saving state by an interrupted push comes back dirty.
func RestoreManager(w *Workspace, saver Saver, opts ...ManagerOption) *Manager {
	m := NewManager(saver, opts...)
	m.snapshot = sortedSlides(w.Snapshot)
	if w.Working == nil {
		m.working = draftsFromSlides(m.snapshot)
	} else {
		m.working = cloneDrafts(w.Working)
	}
	m.state = w.State
	if m.state == StateSaving {
		m.state = StateDirty
	}
	return m
}

// Export copies the Manager's state into w
func (m *Manager) Export(w *Workspace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.State = m.state
	if w.State == StateSaving {
		w.State = StateDirty
	}
	w.Snapshot = sortedSlides(m.snapshot)
	w.Working = cloneDrafts(m.working)
}
