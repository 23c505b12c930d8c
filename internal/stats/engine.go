// Package stats derives bus and stop statistics from a built catalogue.
package stats

import (
	"math"
	"time"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/geo"

	"github.com/patrickmn/go-cache"
)

// Engine answers statistic queries against a read-only catalogue.
// It is safe for concurrent use; the optional memo is a synchronized cache.
type Engine struct {
	cat  *catalogue.Catalogue
	memo *cache.Cache
}

type Option func(*Engine)

// WithMemo caches bus statistics for ttl. A non-positive ttl never expires entries.
func WithMemo(ttl time.Duration) Option {
	return func(e *Engine) {
		if ttl <= 0 {
			e.memo = cache.New(cache.NoExpiration, 0)
			return
		}
		e.memo = cache.New(ttl, 2*ttl)
	}
}

func NewEngine(cat *catalogue.Catalogue, opts ...Option) *Engine {
	e := &Engine{cat: cat}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeBusStat returns the statistics of the named bus, or false if it does not exist.
func (e *Engine) ComputeBusStat(name string) (domain.BusStat, bool) {
	if e.memo != nil {
		if v, ok := e.memo.Get(name); ok {
			return v.(domain.BusStat), true
		}
	}

	bus, ok := e.cat.FindBus(name)
	if !ok {
		return domain.BusStat{}, false
	}

	st := ComputeBusStat(e.cat, bus)
	if e.memo != nil {
		e.memo.SetDefault(name, st)
	}
	return st, true
}

// ComputeStopStat returns the buses visiting the named stop.
func (e *Engine) ComputeStopStat(name string) domain.StopStat {
	buses, ok := e.cat.BusesThrough(name)
	if !ok {
		return domain.StopStat{Name: name}
	}
	return domain.StopStat{Name: name, Found: true, Buses: buses}
}

// ComputeBusStat walks the stop list pairwise. A there-and-back bus also walks
// the list in reverse, reading the reverse-direction road distances.
func ComputeBusStat(cat *catalogue.Catalogue, bus domain.Bus) domain.BusStat {
	st := domain.BusStat{Name: bus.Name}

	unique := make(map[domain.StopID]struct{}, len(bus.Stops))
	for _, id := range bus.Stops {
		unique[id] = struct{}{}
	}
	st.UniqueStopCount = len(unique)

	addLeg := func(from, to domain.StopID) {
		m, ok := cat.DistanceBetween(from, to)
		if !ok {
			st.MissingLegs++
			return
		}
		st.RoadLength += m
	}

	for i := 1; i < len(bus.Stops); i++ {
		prev, next := bus.Stops[i-1], bus.Stops[i]
		st.GeoLength += geo.ComputeDistance(cat.Stop(prev).Coords, cat.Stop(next).Coords)
		addLeg(prev, next)
	}

	switch bus.Kind {
	case domain.ThereAndBack:
		for i := len(bus.Stops) - 1; i > 0; i-- {
			addLeg(bus.Stops[i], bus.Stops[i-1])
		}
		st.GeoLength *= 2
		st.StopCount = 2*len(bus.Stops) - 1
	default:
		st.StopCount = len(bus.Stops)
	}

	if st.GeoLength == 0 {
		st.Curvature = math.NaN()
	} else {
		st.Curvature = float64(st.RoadLength) / st.GeoLength
	}

	return st
}
