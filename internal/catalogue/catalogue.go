package catalogue

import (
	"slices"
	"strings"

	"transport-catalogue-service/internal/domain"
)

// Catalogue is the read-only arena of stops, buses and directed road distances.
//
// It is produced by Builder.Build and exposes no mutators, so it can be shared
// across goroutines without locking. Slices reachable from returned values
// (for example Bus.Stops) belong to the catalogue and must not be modified.
type Catalogue struct {
	stops        []domain.Stop
	stopIndex    map[string]domain.StopID
	buses        []domain.Bus
	busIndex     map[string]domain.BusID
	distances    map[distanceKey]int
	busesThrough [][]domain.BusID
}

func (c *Catalogue) FindStop(name string) (domain.Stop, bool) {
	id, ok := c.stopIndex[name]
	if !ok {
		return domain.Stop{}, false
	}
	return c.stops[id], true
}

func (c *Catalogue) FindBus(name string) (domain.Bus, bool) {
	id, ok := c.busIndex[name]
	if !ok {
		return domain.Bus{}, false
	}
	return c.buses[id], true
}

// Stop returns the stop behind a handle issued by this catalogue.
func (c *Catalogue) Stop(id domain.StopID) domain.Stop { return c.stops[id] }

// Bus returns the bus behind a handle issued by this catalogue.
func (c *Catalogue) Bus(id domain.BusID) domain.Bus { return c.buses[id] }

func (c *Catalogue) StopCount() int { return len(c.stops) }

func (c *Catalogue) BusCount() int { return len(c.buses) }

// GetDistance returns the road distance recorded for exactly (from, to).
// The second result is false when no such distance was recorded; the reverse
// pair is never consulted.
func (c *Catalogue) GetDistance(from, to string) (int, bool) {
	fromID, ok := c.stopIndex[from]
	if !ok {
		return 0, false
	}
	toID, ok := c.stopIndex[to]
	if !ok {
		return 0, false
	}
	return c.DistanceBetween(fromID, toID)
}

// DistanceBetween is GetDistance over stop handles.
func (c *Catalogue) DistanceBetween(from, to domain.StopID) (int, bool) {
	m, ok := c.distances[distanceKey{from: from, to: to}]
	return m, ok
}

// StopsServedBy returns the stop list of a bus in route order.
func (c *Catalogue) StopsServedBy(bus string) ([]domain.Stop, bool) {
	b, ok := c.FindBus(bus)
	if !ok {
		return nil, false
	}

	out := make([]domain.Stop, 0, len(b.Stops))
	for _, id := range b.Stops {
		out = append(out, c.stops[id])
	}
	return out, true
}

// BusesThrough returns the names of the buses visiting a stop, sorted.
// A known stop with no buses yields an empty, non-nil slice.
func (c *Catalogue) BusesThrough(stop string) ([]string, bool) {
	id, ok := c.stopIndex[stop]
	if !ok {
		return nil, false
	}

	ids := c.busesThrough[id]
	out := make([]string, 0, len(ids))
	for _, b := range ids {
		out = append(out, c.buses[b].Name)
	}
	return out, true
}

// Stops returns all stops in load order.
func (c *Catalogue) Stops() []domain.Stop {
	return slices.Clone(c.stops)
}

// Buses returns all buses sorted by name.
func (c *Catalogue) Buses() []domain.Bus {
	out := slices.Clone(c.buses)
	slices.SortFunc(out, func(a, b domain.Bus) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// StopsWithBuses returns the stops visited by at least one bus, sorted by name.
func (c *Catalogue) StopsWithBuses() []domain.Stop {
	out := make([]domain.Stop, 0, len(c.stops))
	for id, buses := range c.busesThrough {
		if len(buses) > 0 {
			out = append(out, c.stops[id])
		}
	}
	slices.SortFunc(out, func(a, b domain.Stop) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Snapshot returns the catalogue as name-keyed records that FromSnapshot accepts.
// Stops and buses keep load order so a rebuilt catalogue issues the same handles.
func (c *Catalogue) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Stops:     make([]domain.StopRecord, 0, len(c.stops)),
		Buses:     make([]domain.BusRecord, 0, len(c.buses)),
		Distances: make([]domain.DistanceRecord, 0, len(c.distances)),
	}

	for _, s := range c.stops {
		snap.Stops = append(snap.Stops, domain.StopRecord{Name: s.Name, Lat: s.Coords.Lat, Lng: s.Coords.Lng})
	}

	for _, b := range c.buses {
		names := make([]string, 0, len(b.Stops))
		for _, id := range b.Stops {
			names = append(names, c.stops[id].Name)
		}
		snap.Buses = append(snap.Buses, domain.BusRecord{Name: b.Name, Stops: names, Kind: b.Kind})
	}

	keys := make([]distanceKey, 0, len(c.distances))
	for k := range c.distances {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b distanceKey) int {
		if a.from != b.from {
			return int(a.from) - int(b.from)
		}
		return int(a.to) - int(b.to)
	})
	for _, k := range keys {
		snap.Distances = append(snap.Distances, domain.DistanceRecord{
			From:   c.stops[k.from].Name,
			To:     c.stops[k.to].Name,
			Meters: c.distances[k],
		})
	}

	return snap
}

func (c *Catalogue) sortBusIDs(ids []domain.BusID) {
	slices.SortFunc(ids, func(a, b domain.BusID) int {
		return strings.Compare(c.buses[a].Name, c.buses[b].Name)
	})
}
