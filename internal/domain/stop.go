package domain

import "transport-catalogue-service/internal/geo"

// Stable handle of a stop inside the catalogue arena.
type StopID int

// Represents a named geographic point serviced by buses.
// A Stop is created once at load time and never modified afterwards.
type Stop struct {
	ID     StopID
	Name   string
	Coords geo.Coordinates
}
