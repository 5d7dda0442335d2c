package carousel

import "context"

// SlideReader defines read access to slides
type SlideReader interface {
	// ListAll returns every slide sorted by order ascending
	ListAll(ctx context.Context) ([]Slide, error)

	// GetByID returns the slide, or nil with no error when it does not exist
	GetByID(ctx context.Context, id int64) (*Slide, error)
}

// SlideWriter defines slide persistence
type SlideWriter interface {
	// Create inserts one slide and returns it with its generated ID and timestamps
	Create(ctx context.Context, data SlideData) (*Slide, error)

	// Update overwrites every mutable field of a slide.
	// It returns nil with no error when no slide has the given ID.
	Update(ctx context.Context, id int64, data SlideData) (*Slide, error)

	// Delete removes a slide permanently and reports whether a row was removed
	Delete(ctx context.Context, id int64) (bool, error)

	// BatchUpsert applies items atomically. Item i receives order i+1.
	// The returned slides follow the input order.
	BatchUpsert(ctx context.Context, items []UpsertItem) ([]Slide, error)
}

// SlideOrderer computes display positions
type SlideOrderer interface {
	// NextOrder returns max(order)+1, or 1 when there are no slides
	NextOrder(ctx context.Context) (int, error)
}

// SlideRepository defines the full interface for slide persistence
type SlideRepository interface {
	SlideReader
	SlideWriter
	SlideOrderer
}
