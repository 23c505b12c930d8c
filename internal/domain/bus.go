package domain

import "fmt"

// Stable handle of a bus inside the catalogue arena.
type BusID int

// RouteKind tells how a bus traverses its stop list.
type RouteKind uint8

const (
	// The stop list is traversed once; a closed loop lists its first stop again at the end.
	RoundTrip RouteKind = iota
	// The stop list is traversed forward and then back to the first stop.
	ThereAndBack
)

func RouteKindFromRoundTrip(isRoundTrip bool) RouteKind {
	if isRoundTrip {
		return RoundTrip
	}
	return ThereAndBack
}

func (k RouteKind) String() string {
	switch k {
	case RoundTrip:
		return "round_trip"
	case ThereAndBack:
		return "there_and_back"
	default:
		return fmt.Sprintf("route_kind(%d)", uint8(k))
	}
}

// ParseRouteKind is the inverse of RouteKind.String.
func ParseRouteKind(s string) (RouteKind, error) {
	switch s {
	case "round_trip":
		return RoundTrip, nil
	case "there_and_back":
		return ThereAndBack, nil
	default:
		return 0, fmt.Errorf("parse route kind: unknown value %q", s)
	}
}

// Represents a bus line: a named, ordered, non-empty sequence of stops.
// Stops are referenced by handle; the catalogue owns the Stop records.
type Bus struct {
	ID    BusID
	Name  string
	Stops []StopID
	Kind  RouteKind
}
