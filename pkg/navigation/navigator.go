// Package navigation moves a reader between screens. A Navigator resolves
// route strings, builds the matching screen controller and keeps a LIFO
// history for back navigation. Popping an empty history exits.
package navigation

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/readerapp/reader/pkg/route"
	"github.com/readerapp/reader/pkg/screens"
)

// ScreenFunc builds the controller for a destination. param is the route's
// parameter, passed through verbatim, or nil when the route had none.
type ScreenFunc func(param *string) (screens.Screen, error)

// TransitionFunc observes every move between screens. to is nil when popping
// an empty stack exits the navigator.
type TransitionFunc func(from Entry, to *Entry)

// ErrExited is returned when navigating after the back stack was exhausted.
var ErrExited = errors.New("navigation: navigator has exited")

// MissingParameterError is returned when a destination that needs a
// parameter is navigated to without one.
type MissingParameterError struct {
	Destination route.Destination
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("navigation: %s requires a %s parameter", e.Destination, e.Destination.ParameterName())
}

// UnregisteredDestinationError is returned for a known destination that has
// no ScreenFunc.
type UnregisteredDestinationError struct {
	Destination route.Destination
}

func (e *UnregisteredDestinationError) Error() string {
	return fmt.Sprintf("navigation: %s is not registered", e.Destination)
}

// Navigator is safe for concurrent use.
type Navigator struct {
	mu         sync.Mutex
	registry   *route.Registry
	screens    map[route.Destination]ScreenFunc
	transition TransitionFunc
	stack      *Stack
	current    Entry
	started    bool
	exited     bool
}

// New returns a Navigator sitting on the splash destination. Register the
// screens, then call Start.
func New(registry *route.Registry) *Navigator {
	return &Navigator{
		registry: registry,
		screens:  make(map[route.Destination]ScreenFunc),
		stack:    NewStack(),
		current:  Entry{Route: route.Route{Destination: route.SplashScreen}},
	}
}

// Register adds a screen to the navigator.
func (n *Navigator) Register(d route.Destination, fn ScreenFunc) *Navigator {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.screens[d] = fn
	return n
}

// OnTransition sets a function called after every move.
func (n *Navigator) OnTransition(fn TransitionFunc) *Navigator {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.transition = fn
	return n
}

// Start builds the splash screen. It is a no-op once started.
func (n *Navigator) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return nil
	}
	screen, err := n.build(route.Route{Destination: route.SplashScreen})
	if err != nil {
		return err
	}
	n.current.Screen = screen
	n.started = true
	return nil
}

func (n *Navigator) build(r route.Route) (screens.Screen, error) {
	fn, ok := n.screens[r.Destination]
	if !ok {
		return nil, &UnregisteredDestinationError{r.Destination}
	}
	if r.Destination.RequiresParameter() && (r.Parameter == nil || *r.Parameter == "") {
		return nil, &MissingParameterError{r.Destination}
	}
	screen, err := fn(r.Parameter)
	if err != nil {
		return nil, errors.Wrapf(err, "navigation: failed to build %s", r.Destination)
	}
	return screen, nil
}

// Navigate resolves routeStr, builds its screen and makes it current, pushing
// the previous screen onto the back stack. An unrecognized route is returned
// as a *route.UnrecognizedRouteError and leaves the navigator untouched.
// Navigating in circles is allowed.
func (n *Navigator) Navigate(routeStr string) error {
	resolved, err := n.registry.Resolve(&routeStr)
	if err != nil {
		return err
	}

	n.mu.Lock()
	if n.exited {
		n.mu.Unlock()
		return ErrExited
	}
	screen, err := n.build(resolved)
	if err != nil {
		n.mu.Unlock()
		return err
	}

	from := n.current
	n.stack.Push(from)
	n.current = Entry{Route: resolved, Screen: screen}
	to := n.current
	transition := n.transition
	n.mu.Unlock()

	if transition != nil {
		transition(from, &to)
	}
	return nil
}

// PopBackStack returns to the previous screen. With nothing to return to the
// navigator exits and PopBackStack reports false.
func (n *Navigator) PopBackStack() bool {
	n.mu.Lock()
	if n.exited {
		n.mu.Unlock()
		return false
	}

	from := n.current
	entry := n.stack.Pop()
	if entry == nil {
		n.exited = true
	} else {
		n.current = *entry
	}
	transition := n.transition
	n.mu.Unlock()

	if transition != nil {
		transition(from, entry)
	}
	return entry != nil
}

// Current returns the screen being shown.
func (n *Navigator) Current() Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// BackStack returns the history below the current screen, bottom first.
func (n *Navigator) BackStack() []Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack.Entries()
}

// Exited reports whether the back stack has been exhausted.
func (n *Navigator) Exited() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.exited
}
