package carousel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	domain "github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/domain/shared"
)

// State is the editing state of a Manager
type State int

const (
	StateIdle State = iota
	StateDirty
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText stores the state by name in the workspace file
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name
func (s *State) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "idle":
		*s = StateIdle
	case "dirty":
		*s = StateDirty
	case "saving":
		*s = StateSaving
	default:
		return fmt.Errorf("unknown state %q", string(b))
	}
	return nil
}

var (
	// ErrInvalidTransition is returned for an action the current state does not allow
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrPositionOutOfRange is returned for a 1-based position outside the working list
	ErrPositionOutOfRange = errors.New("position out of range")
)

// Saver persists the whole working list and returns the stored result
type Saver interface {
	BatchSave(ctx context.Context, drafts []Draft) ([]Slide, error)
}

// Manager owns the working copy of the carousel.
//
// Edits move it from idle to dirty. Save moves dirty to saving, then to idle
// with the server's response on success, or back to dirty with every staged
// edit kept on failure. Reset returns to the last fetched snapshot.
type Manager struct {
	mu            sync.Mutex
	saver         Saver
	state         State
	snapshot      []Slide
	working       []Draft
	maxImageBytes int64
	maxNewImages  int
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithMaxImageSize sets the image size limit editors enforce
func WithMaxImageSize(n int64) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxImageBytes = n
		}
	}
}

// WithMaxBatchImages sets how many new images one save may carry
func WithMaxBatchImages(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxNewImages = n
		}
	}
}

// NewManager creates an idle Manager with an empty carousel
func NewManager(saver Saver, opts ...ManagerOption) *Manager {
	m := &Manager{
		saver:         saver,
		maxImageBytes: domain.DefaultMaxImageSize,
		maxNewImages:  domain.DefaultMaxBatchImages,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns the last slide list fetched from the server
func (m *Manager) Snapshot() []Slide {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedSlides(m.snapshot)
}

// Working returns a copy of the working list in display order
func (m *Manager) Working() []Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneDrafts(m.working)
}

// Load replaces the snapshot with a fresh server list. Not allowed while there
// are unsaved edits.
func (m *Manager) Load(slides []Slide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return m.invalid("load")
	}
	m.snapshot = sortedSlides(slides)
	m.working = draftsFromSlides(m.snapshot)
	return nil
}

// Stage replaces the draft at the 1-based position pos
func (m *Manager) Stage(pos int, d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return m.invalid("edit")
	}
	if err := m.checkPosition(pos); err != nil {
		return err
	}
	m.working[pos-1] = d.clone()
	m.state = StateDirty
	return nil
}

// Append adds a draft at the end of the list and returns its position
func (m *Manager) Append(d Draft) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return 0, m.invalid("add")
	}
	m.working = append(m.working, d.clone())
	m.state = StateDirty
	return len(m.working), nil
}

// Move moves the draft at position from to position to, shifting the slides
// in between
func (m *Manager) Move(from, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return m.invalid("move")
	}
	if err := m.checkPosition(from); err != nil {
		return err
	}
	if err := m.checkPosition(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	d := m.working[from-1]
	m.working = slices.Insert(slices.Delete(m.working, from-1, from), to-1, d)
	m.state = StateDirty
	return nil
}

// Edit returns an editor for the draft at pos. Every change made through it is
// staged on the Manager.
func (m *Manager) Edit(pos int) (*SlideEditor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return nil, m.invalid("edit")
	}
	if err := m.checkPosition(pos); err != nil {
		return nil, err
	}
	return NewSlideEditor(m.working[pos-1], func(d Draft) error {
		return m.Stage(pos, d)
	}, m.maxImageBytes), nil
}

// EditNew returns an editor for a slide that is appended to the list on its
// first change
func (m *Manager) EditNew() *SlideEditor {
	pos := 0
	return NewSlideEditor(Draft{}, func(d Draft) error {
		if pos == 0 {
			p, err := m.Append(d)
			if err != nil {
				return err
			}
			pos = p
			return nil
		}
		return m.Stage(pos, d)
	}, m.maxImageBytes)
}

// Forget drops a slide that was deleted on the server from the snapshot and
// the working list
func (m *Manager) Forget(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return m.invalid("forget")
	}
	m.snapshot = slices.DeleteFunc(m.snapshot, func(s Slide) bool { return s.ID == id })
	m.working = slices.DeleteFunc(m.working, func(d Draft) bool { return d.ID != nil && *d.ID == id })
	return nil
}

// Save sends the working list to the server. The position of each draft
// becomes its order.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateDirty {
		err := m.invalid("save")
		m.mu.Unlock()
		return err
	}
	if err := validateDrafts(m.working, m.maxNewImages); err != nil {
		m.mu.Unlock()
		return err
	}
	drafts := cloneDrafts(m.working)
	m.state = StateSaving
	m.mu.Unlock()

	slides, err := m.saver.BatchSave(ctx, drafts)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateDirty
		return err
	}
	m.snapshot = sortedSlides(slides)
	m.working = draftsFromSlides(m.snapshot)
	m.state = StateIdle
	return nil
}

// Reset discards every local edit and restores the last snapshot
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSaving {
		return m.invalid("reset")
	}
	m.working = draftsFromSlides(m.snapshot)
	m.state = StateIdle
	return nil
}

func (m *Manager) invalid(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, m.state)
}

func (m *Manager) checkPosition(pos int) error {
	if pos < 1 || pos > len(m.working) {
		return fmt.Errorf("%w: %d (have %d slides)", ErrPositionOutOfRange, pos, len(m.working))
	}
	return nil
}

// validateDrafts catches what the server would reject before any traffic
func validateDrafts(drafts []Draft, maxNewImages int) error {
	if len(drafts) == 0 {
		return shared.NewValidationError("Slides array is required")
	}
	staged := 0
	for i, d := range drafts {
		if d.Image != nil {
			staged++
		}
		position := i + 1
		if strings.TrimSpace(d.Title) == "" {
			return shared.NewValidationError(fmt.Sprintf("Title is required for slide %d", position))
		}
		if d.IsNew() && d.Image == nil && d.ImageRef == "" {
			return shared.NewValidationError(fmt.Sprintf("Image is required for slide %d", position))
		}
	}
	if staged > maxNewImages {
		return shared.NewValidationError(fmt.Sprintf(
			"Too many new images: %d staged, at most %d per push", staged, maxNewImages))
	}
	return nil
}

// Change describes how a working draft differs from the snapshot
type Change struct {
	Position      int
	Draft         Draft
	Added         bool
	Moved         bool
	FromOrder     int
	Edited        bool
	ImageReplaced bool
}

// Changes lists the drafts that a save would alter, in working order
func (m *Manager) Changes() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make(map[int64]Slide, len(m.snapshot))
	for _, s := range m.snapshot {
		stored[s.ID] = s
	}

	var changes []Change
	for i, d := range m.working {
		c := Change{Position: i + 1, Draft: d.clone(), ImageReplaced: d.Image != nil}
		if d.IsNew() {
			c.Added = true
			changes = append(changes, c)
			continue
		}
		if s, ok := stored[*d.ID]; ok {
			c.FromOrder = s.Order
			c.Moved = s.Order != c.Position
			c.Edited = s.Title != d.Title || !equalOptional(s.Subtitle, d.Subtitle) || !equalOptional(s.AltText, d.AltText)
		}
		if c.Moved || c.Edited || c.ImageReplaced {
			changes = append(changes, c)
		}
	}
	return changes
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
