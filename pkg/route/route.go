// Package route names the screens a client can navigate to and turns route
// strings such as "UpdateScreen/abc123" back into a destination plus its
// parameter.
package route

import (
	"fmt"
	"strings"
)

// Destination is a named navigable screen.
type Destination string

const (
	SplashScreen        Destination = "SplashScreen"
	LoginScreen         Destination = "LoginScreen"
	CreateAccountScreen Destination = "CreateAccountScreen"
	ReaderHomeScreen    Destination = "ReaderHomeScreen"
	SearchScreen        Destination = "SearchScreen"
	DetailScreen        Destination = "DetailScreen"
	UpdateScreen        Destination = "UpdateScreen"
	ReaderStatsScreen   Destination = "ReaderStatsScreen"
)

// Destinations lists every known destination in declaration order.
var Destinations = []Destination{
	SplashScreen,
	LoginScreen,
	CreateAccountScreen,
	ReaderHomeScreen,
	SearchScreen,
	DetailScreen,
	UpdateScreen,
	ReaderStatsScreen,
}

var parameterNames = map[Destination]string{
	DetailScreen: "bookId",
	UpdateScreen: "bookItemId",
}

func (d Destination) String() string {
	return string(d)
}

// RequiresParameter reports whether the destination can only be reached with
// a path parameter.
func (d Destination) RequiresParameter() bool {
	_, ok := parameterNames[d]
	return ok
}

// ParameterName returns the name of the destination's path parameter, or ""
// if it takes none.
func (d Destination) ParameterName() string {
	return parameterNames[d]
}

// Pattern returns the route pattern the destination is registered under, e.g.
// "DetailScreen/{bookId}".
func (d Destination) Pattern() string {
	if name, ok := parameterNames[d]; ok {
		return string(d) + "/{" + name + "}"
	}
	return string(d)
}

// Valid reports whether d is one of the known destinations.
func (d Destination) Valid() bool {
	for _, known := range Destinations {
		if d == known {
			return true
		}
	}
	return false
}

// Route is a resolved destination plus its optional path parameter.
type Route struct {
	Destination Destination `json:"destination"`
	Parameter   *string     `json:"parameter,omitempty"`
}

// String renders the route back into the form Resolve accepts. A present but
// empty parameter keeps its trailing slash.
func (r Route) String() string {
	if r.Parameter == nil {
		return string(r.Destination)
	}
	return string(r.Destination) + "/" + *r.Parameter
}

// Build joins a destination and a parameter into a route string. An empty
// parameter yields the bare destination name.
func Build(d Destination, param string) string {
	if param == "" {
		return string(d)
	}
	return string(d) + "/" + param
}

// UnrecognizedRouteError is returned when a route string doesn't name a known
// destination. It always points at a dispatch bug, so callers should abort
// navigation rather than fall back to some other screen.
type UnrecognizedRouteError struct {
	Route string
}

func (e *UnrecognizedRouteError) Error() string {
	return fmt.Sprintf("route %q is not recognized", e.Route)
}

// Registry resolves route strings against the fixed destination set.
type Registry struct {
	fallback Destination
}

// NewRegistry returns a Registry that resolves an absent route to fallback.
func NewRegistry(fallback Destination) *Registry {
	return &Registry{fallback: fallback}
}

// Default returns the destination an absent route resolves to.
func (r *Registry) Default() Destination {
	return r.fallback
}

// Resolve maps a route string to its destination. A nil route resolves to the
// registry's fallback destination; anything else must start with an exact
// destination name, optionally followed by "/" and a parameter that is passed
// through verbatim.
func (r *Registry) Resolve(route *string) (Route, error) {
	if route == nil {
		return Route{Destination: r.fallback}, nil
	}

	name, param, hasParam := strings.Cut(*route, "/")
	d := Destination(name)
	if !d.Valid() {
		return Route{}, &UnrecognizedRouteError{Route: *route}
	}

	resolved := Route{Destination: d}
	if hasParam {
		resolved.Parameter = &param
	}
	return resolved, nil
}

var defaultRegistry = NewRegistry(ReaderHomeScreen)

// Resolve resolves route against the default registry, which falls back to
// the home screen.
func Resolve(route *string) (Route, error) {
	return defaultRegistry.Resolve(route)
}
