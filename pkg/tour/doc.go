// Package tour holds the target registry and the navigation state machine of
// a coach-mark tour.
//
// A [Tour] maps integer positions to [Target] descriptors and latches a
// current position. Traversal order is the ascending order of the registered
// positions, recomputed from the live registry on every transition, so
// targets may be registered in any order and at any time:
//
//	t := tour.New()
//	t.Register(2, tour.NewTarget(searchBox, "Type to search"))
//	t.Register(1, tour.NewTarget(menu, "Open the menu", tour.WithAlignment(geom.BottomStart)))
//	t.Advance() // 1 -> 2
//	t.Advance() // 2 -> hidden, completed
//
// # States
//
// The tour is either active at a position or [Hidden]. The current target is
// present exactly when the current position is registered. Once hidden, only
// [Tour.Reset] or [Tour.Restore] leave that state; new registrations never
// resurrect a finished tour.
//
// # Events
//
// Every transition returns an [Event]. Navigation events are also delivered
// to the registered [Listener]s after the tour's lock has been released, so
// listeners may call back into the tour.
package tour
