package checkpoint

import (
	"context"
	"time"

	"github.com/matzehuels/coachmark/pkg/observability"
)

// Observed wraps s so that loads and saves are reported to the registered
// store hooks under the given backend name.
func Observed(backend string, s Store) Store {
	return &observed{Store: s, backend: backend}
}

type observed struct {
	Store
	backend string
}

func (o *observed) Load(ctx context.Context, tourID string) (Checkpoint, bool, error) {
	start := time.Now()
	c, ok, err := o.Store.Load(ctx, tourID)
	observability.Store().OnLoad(ctx, o.backend, ok, time.Since(start), err)
	return c, ok, err
}

func (o *observed) Save(ctx context.Context, c Checkpoint) error {
	start := time.Now()
	err := o.Store.Save(ctx, c)
	observability.Store().OnSave(ctx, o.backend, time.Since(start), err)
	return err
}
