package effect

import (
	"context"
	"sync"
	"time"
)

// frameInterval is the tick of reveal animations.
const frameInterval = 16 * time.Millisecond

// animator holds the progress of a reveal in [0, 1]. It starts fully
// revealed so that hosts that never animate still see the hole.
type animator struct {
	mu       sync.Mutex
	progress float64
	touched  bool
}

func (a *animator) value() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.touched {
		return 1
	}
	return a.progress
}

func (a *animator) snap(v float64) {
	a.mu.Lock()
	a.progress = v
	a.touched = true
	a.mu.Unlock()
}

// run moves progress linearly from its current value to target over d.
// A non-positive d snaps.
func (a *animator) run(ctx context.Context, target float64, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := a.value()
	if d <= 0 || from == target {
		a.snap(target)
		return nil
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t := float64(now.Sub(start)) / float64(d)
			if t >= 1 {
				a.snap(target)
				return nil
			}
			a.snap(from + (target-from)*t)
		}
	}
}
