package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/geo"
)

type distanceKey struct {
	from domain.StopID
	to   domain.StopID
}

// Builder accepts load-time records and produces a read-only Catalogue.
//
// A Builder has a single writer and is not safe for concurrent use.
// After Build returns, every mutating method fails with ErrSealed, so no
// code path can change a Catalogue that is already being queried.
type Builder struct {
	stops        []domain.Stop
	stopIndex    map[string]domain.StopID
	buses        []domain.Bus
	busIndex     map[string]domain.BusID
	distances    map[distanceKey]int
	busesThrough []map[domain.BusID]struct{}
	sealed       bool
}

func NewBuilder() *Builder {
	return &Builder{
		stopIndex: make(map[string]domain.StopID),
		busIndex:  make(map[string]domain.BusID),
		distances: make(map[distanceKey]int),
	}
}

// AddStop registers a stop under a unique name.
func (b *Builder) AddStop(name string, coords geo.Coordinates) error {
	if b.sealed {
		return fmt.Errorf("add stop %q: %w", name, ErrSealed)
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("add stop: name must not be empty")
	}

	if _, ok := b.stopIndex[name]; ok {
		return fmt.Errorf("add stop %q: %w", name, ErrDuplicateStop)
	}

	id := domain.StopID(len(b.stops))
	b.stops = append(b.stops, domain.Stop{ID: id, Name: name, Coords: coords})
	b.stopIndex[name] = id
	b.busesThrough = append(b.busesThrough, nil)

	return nil
}

// AddBus registers a bus line. Every referenced stop must already be present;
// on error the builder is left unchanged.
func (b *Builder) AddBus(name string, stopNames []string, kind domain.RouteKind) error {
	if b.sealed {
		return fmt.Errorf("add bus %q: %w", name, ErrSealed)
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("add bus: name must not be empty")
	}

	if _, ok := b.busIndex[name]; ok {
		return fmt.Errorf("add bus %q: %w", name, ErrDuplicateBus)
	}

	if len(stopNames) == 0 {
		return fmt.Errorf("add bus %q: %w", name, ErrEmptyRoute)
	}

	if kind != domain.RoundTrip && kind != domain.ThereAndBack {
		return fmt.Errorf("add bus %q: invalid route kind %d", name, kind)
	}

	stops := make([]domain.StopID, 0, len(stopNames))
	for _, s := range stopNames {
		id, ok := b.stopIndex[s]
		if !ok {
			return fmt.Errorf("add bus %q: stop %q: %w", name, s, ErrUnknownStop)
		}
		stops = append(stops, id)
	}

	id := domain.BusID(len(b.buses))
	b.buses = append(b.buses, domain.Bus{ID: id, Name: name, Stops: stops, Kind: kind})
	b.busIndex[name] = id

	for _, s := range stops {
		if b.busesThrough[s] == nil {
			b.busesThrough[s] = make(map[domain.BusID]struct{})
		}
		b.busesThrough[s][id] = struct{}{}
	}

	return nil
}

// SetDistance records the road distance for the ordered pair (from, to),
// overwriting any earlier value. The reverse pair is not touched.
func (b *Builder) SetDistance(from, to string, meters int) error {
	if b.sealed {
		return fmt.Errorf("set distance %q -> %q: %w", from, to, ErrSealed)
	}

	if meters < 0 {
		return fmt.Errorf("set distance %q -> %q: distance must be non-negative, got %d", from, to, meters)
	}

	fromID, ok := b.stopIndex[from]
	if !ok {
		return fmt.Errorf("set distance: stop %q: %w", from, ErrUnknownStop)
	}

	toID, ok := b.stopIndex[to]
	if !ok {
		return fmt.Errorf("set distance: stop %q: %w", to, ErrUnknownStop)
	}

	b.distances[distanceKey{from: fromID, to: toID}] = meters
	return nil
}

// HasDistance reports whether the ordered pair (from, to) has a recorded distance.
func (b *Builder) HasDistance(from, to string) bool {
	fromID, ok := b.stopIndex[from]
	if !ok {
		return false
	}
	toID, ok := b.stopIndex[to]
	if !ok {
		return false
	}
	_, ok = b.distances[distanceKey{from: fromID, to: toID}]
	return ok
}

// Build seals the builder and returns the read-only catalogue.
func (b *Builder) Build() (*Catalogue, error) {
	if b.sealed {
		return nil, fmt.Errorf("build catalogue: %w", ErrSealed)
	}
	b.sealed = true

	c := &Catalogue{
		stops:        b.stops,
		stopIndex:    b.stopIndex,
		buses:        b.buses,
		busIndex:     b.busIndex,
		distances:    b.distances,
		busesThrough: make([][]domain.BusID, len(b.stops)),
	}

	// Freeze the adjacency index as name-ordered slices.
	for stop, set := range b.busesThrough {
		ids := make([]domain.BusID, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		c.sortBusIDs(ids)
		c.busesThrough[stop] = ids
	}

	b.stops, b.buses, b.busesThrough = nil, nil, nil
	b.stopIndex, b.busIndex, b.distances = nil, nil, nil

	return c, nil
}

// FromSnapshot rebuilds a catalogue from its persisted form.
// Records are applied in order: stops, distances, buses.
func FromSnapshot(snap domain.Snapshot) (*Catalogue, error) {
	b := NewBuilder()

	for _, s := range snap.Stops {
		if err := b.AddStop(s.Name, geo.Coordinates{Lat: s.Lat, Lng: s.Lng}); err != nil {
			return nil, fmt.Errorf("catalogue from snapshot: %w", err)
		}
	}

	for _, d := range snap.Distances {
		if err := b.SetDistance(d.From, d.To, d.Meters); err != nil {
			return nil, fmt.Errorf("catalogue from snapshot: %w", err)
		}
	}

	for _, bus := range snap.Buses {
		if err := b.AddBus(bus.Name, bus.Stops, bus.Kind); err != nil {
			return nil, fmt.Errorf("catalogue from snapshot: %w", err)
		}
	}

	return b.Build()
}
