// Package checkpoint persists the position of a tour so that it can be
// resumed after the host restarts.
//
// A [Checkpoint] records the latched position of one tour, identified by a
// tour ID. Stores implement [Store] for different backends:
//   - memory: in-process storage for tests and single runs
//   - null: disables persistence
//   - file: one JSON file per tour for CLI use
//   - redis: shared storage for multi-instance hosts
//   - mongo: document storage keyed by tour ID
//
// # Usage
//
//	store, err := checkpoint.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	// Resume where the user left off, then keep saving.
//	if _, err := checkpoint.Resume(ctx, store, id, t); err != nil {
//	    return err
//	}
//	checkpoint.Track(ctx, store, id, t, logger)
package checkpoint

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/tour"
)

// Checkpoint is the persisted state of one tour.
type Checkpoint struct {
	TourID   string    `json:"tour_id"`
	Position int       `json:"position"`
	Hidden   bool      `json:"hidden"`
	SavedAt  time.Time `json:"saved_at"`
}

// New captures the state of t under tourID.
func New(tourID string, t *tour.Tour) Checkpoint {
	s := t.Checkpoint()
	return Checkpoint{
		TourID:   tourID,
		Position: s.Position,
		Hidden:   s.Hidden,
		SavedAt:  time.Now().UTC(),
	}
}

// Apply latches the checkpointed position on t.
func (c Checkpoint) Apply(t *tour.Tour) {
	if c.Hidden {
		t.Restore(tour.Hidden)
		return
	}
	t.Restore(c.Position)
}

// Store is the interface for checkpoint storage backends.
type Store interface {
	// Load retrieves the checkpoint of tourID.
	// Returns false and no error if none exists.
	Load(ctx context.Context, tourID string) (Checkpoint, bool, error)

	// Save stores c, replacing any previous checkpoint of the same tour.
	Save(ctx context.Context, c Checkpoint) error

	// Delete removes the checkpoint of tourID. Missing checkpoints are not
	// an error.
	Delete(ctx context.Context, tourID string) error

	// Close releases backend resources.
	Close() error
}

// Resume loads the checkpoint of tourID and applies it to t. It reports
// whether a checkpoint was found.
func Resume(ctx context.Context, s Store, tourID string, t *tour.Tour) (bool, error) {
	c, ok, err := s.Load(ctx, tourID)
	if err != nil || !ok {
		return false, err
	}
	c.Apply(t)
	return true, nil
}

// Track saves a checkpoint of t after every navigation event and every reset
// until ctx is done. Save failures are logged, never returned.
func Track(ctx context.Context, s Store, tourID string, t *tour.Tour, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	save := func(tour.Event) {
		if ctx.Err() != nil {
			return
		}
		if err := s.Save(ctx, New(tourID, t)); err != nil {
			logger.Warn("checkpoint not saved", "tour", tourID, "err", errors.UserMessage(err))
		}
	}
	t.AddListener(tour.ListenerFuncs{
		Advanced:  save,
		Retreated: save,
		Skipped:   save,
		Completed: save,
		Reset:     save,
	})
}

// Lister is implemented by stores that can enumerate their checkpoints.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// List returns the sorted tour IDs stored in s. Backends that cannot
// enumerate report UNSUPPORTED.
func List(ctx context.Context, s Store) ([]string, error) {
	if o, ok := s.(*observed); ok {
		s = o.Store
	}
	l, ok := s.(Lister)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "checkpoint backend cannot list tours")
	}
	ids, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

func notFound(tourID string) error {
	return errors.New(errors.ErrCodeCheckpointNotFound, "no checkpoint for tour %q", tourID)
}

// Require is Load that reports a missing checkpoint as a
// CHECKPOINT_NOT_FOUND error.
func Require(ctx context.Context, s Store, tourID string) (Checkpoint, error) {
	c, ok, err := s.Load(ctx, tourID)
	if err != nil {
		return Checkpoint{}, err
	}
	if !ok {
		return Checkpoint{}, notFound(tourID)
	}
	return c, nil
}
