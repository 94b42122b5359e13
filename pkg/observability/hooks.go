// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about tour navigation, content placement, animations, and
// checkpoint storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps pkg/tour and
// pkg/placement free of any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTourHooks(&myTourHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tour().OnTransition("advanced", 1, 2)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Tour Hooks
// =============================================================================

// TourHooks receives events from the tour state machine.
type TourHooks interface {
	// OnRegister records a target registration. replaced is true when the
	// position already held a target.
	OnRegister(position int, replaced bool)

	// OnTransition records a committed state change. to is -1 when the tour
	// became hidden.
	OnTransition(kind string, from, to int)
}

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from content placement.
type PlacementHooks interface {
	// OnPlace records one placement decision.
	OnPlace(strategy, alignment string, fits bool, duration time.Duration)
}

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from reveal-effect animations run by the overlay.
type AnimationHooks interface {
	OnAnimationStart(ctx context.Context, phase string, position int)
	OnAnimationComplete(ctx context.Context, phase string, position int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from checkpoint stores.
type StoreHooks interface {
	OnLoad(ctx context.Context, backend string, found bool, duration time.Duration, err error)
	OnSave(ctx context.Context, backend string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTourHooks is a no-op implementation of TourHooks.
type NoopTourHooks struct{}

func (NoopTourHooks) OnRegister(int, bool)          {}
func (NoopTourHooks) OnTransition(string, int, int) {}

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnPlace(string, string, bool, time.Duration) {}

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnAnimationStart(context.Context, string, int) {}
func (NoopAnimationHooks) OnAnimationComplete(context.Context, string, int, time.Duration, error) {
}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, time.Duration, error)       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	tourHooks      TourHooks      = NoopTourHooks{}
	placementHooks PlacementHooks = NoopPlacementHooks{}
	animationHooks AnimationHooks = NoopAnimationHooks{}
	storeHooks     StoreHooks     = NoopStoreHooks{}
	hooksMu        sync.RWMutex
)

// SetTourHooks registers custom tour hooks.
// This should be called once at application startup.
func SetTourHooks(h TourHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tourHooks = h
	}
}

// SetPlacementHooks registers custom placement hooks.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetAnimationHooks registers custom animation hooks.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// SetStoreHooks registers custom checkpoint store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Tour returns the registered tour hooks.
func Tour() TourHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tourHooks
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Store returns the registered checkpoint store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tourHooks = NoopTourHooks{}
	placementHooks = NoopPlacementHooks{}
	animationHooks = NoopAnimationHooks{}
	storeHooks = NoopStoreHooks{}
}
