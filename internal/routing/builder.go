package routing

import (
	"errors"
	"fmt"
	"log"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
)

var (
	ErrUnknownStop     = catalogue.ErrUnknownStop
	ErrInvalidSettings = errors.New("invalid routing settings")
)

type EdgeKind uint8

const (
	// Waiting vertex to boarding vertex of the same stop; costs the wait time.
	BoardEdge EdgeKind = iota
	// Boarding vertex of one stop to waiting vertex of a later stop of the same bus.
	RideEdge
)

// EdgeInfo describes what a graph edge means to a passenger.
type EdgeInfo struct {
	Kind    EdgeKind
	Stop    domain.StopID
	Bus     domain.BusID
	Span    int
	Minutes float64
}

// StopVertices is the vertex pair allocated for one stop.
type StopVertices struct {
	Wait  VertexID
	Board VertexID
}

// RouteGraph is the immutable result of BuildRouteGraph. It is safe to share
// between goroutines.
type RouteGraph struct {
	cat          *catalogue.Catalogue
	settings     domain.RoutingSettings
	graph        *Graph
	info         []EdgeInfo
	stopVertices map[string]StopVertices
	skippedSpans int
}

// BuildRouteGraph turns a built catalogue into the route graph.
//
// Every stop gets a waiting and a boarding vertex joined by a board edge that
// costs the wait time. Every bus contributes one ride edge for each ordered
// pair of positions (i, j), i < j, of its traversal, weighted by the travel
// time of the cumulative road distance between them. Spans crossing a leg
// with no recorded distance are not emitted.
func BuildRouteGraph(cat *catalogue.Catalogue, settings domain.RoutingSettings) (*RouteGraph, error) {
	if cat == nil {
		return nil, errors.New("build route graph: catalogue is nil")
	}

	if settings.BusVelocity <= 0 {
		return nil, fmt.Errorf("build route graph: bus velocity %v: %w", settings.BusVelocity, ErrInvalidSettings)
	}

	if settings.BusWaitTime < 0 {
		return nil, fmt.Errorf("build route graph: bus wait time %v: %w", settings.BusWaitTime, ErrInvalidSettings)
	}

	rg := &RouteGraph{
		cat:          cat,
		settings:     settings,
		graph:        NewGraph(2 * cat.StopCount()),
		stopVertices: make(map[string]StopVertices, cat.StopCount()),
	}

	for _, stop := range cat.Stops() {
		pair := vertexPair(stop.ID)
		rg.stopVertices[stop.Name] = pair
		rg.addEdge(
			Edge{From: pair.Wait, To: pair.Board, Weight: RouteWeight{Minutes: settings.BusWaitTime}},
			EdgeInfo{Kind: BoardEdge, Stop: stop.ID, Minutes: settings.BusWaitTime},
		)
	}

	for _, bus := range cat.Buses() {
		rg.addBusEdges(bus)
	}

	log.Printf(
		"route graph built: stops=%d buses=%d vertices=%d edges=%d skipped_spans=%d",
		cat.StopCount(), cat.BusCount(), rg.graph.VertexCount(), rg.graph.EdgeCount(), rg.skippedSpans,
	)

	return rg, nil
}

func vertexPair(id domain.StopID) StopVertices {
	return StopVertices{Wait: VertexID(2 * id), Board: VertexID(2*id + 1)}
}

func (rg *RouteGraph) addEdge(e Edge, info EdgeInfo) {
	rg.graph.AddEdge(e)
	rg.info = append(rg.info, info)
}

func (rg *RouteGraph) addBusEdges(bus domain.Bus) {
	seq := bus.Stops
	if bus.Kind == domain.ThereAndBack {
		seq = make([]domain.StopID, 0, 2*len(bus.Stops)-1)
		seq = append(seq, bus.Stops...)
		for i := len(bus.Stops) - 2; i >= 0; i-- {
			seq = append(seq, bus.Stops[i])
		}
	}

	for i := 0; i < len(seq)-1; i++ {
		meters := 0
		for j := i + 1; j < len(seq); j++ {
			d, ok := rg.cat.DistanceBetween(seq[j-1], seq[j])
			if !ok {
				rg.skippedSpans += len(seq) - j
				break
			}
			meters += d

			if seq[i] == seq[j] {
				continue
			}

			minutes := rg.travelMinutes(meters)
			rg.addEdge(
				Edge{
					From:   vertexPair(seq[i]).Board,
					To:     vertexPair(seq[j]).Wait,
					Weight: RouteWeight{Minutes: minutes, Span: j - i},
				},
				EdgeInfo{Kind: RideEdge, Stop: seq[i], Bus: bus.ID, Span: j - i, Minutes: minutes},
			)
		}
	}
}

// travelMinutes converts a road distance to minutes at the configured velocity.
func (rg *RouteGraph) travelMinutes(meters int) float64 {
	return float64(meters) / 1000 / rg.settings.BusVelocity * 60
}

func (rg *RouteGraph) Settings() domain.RoutingSettings { return rg.settings }

func (rg *RouteGraph) Graph() *Graph { return rg.graph }

func (rg *RouteGraph) EdgeInfo(id EdgeID) EdgeInfo { return rg.info[id] }

// StopVertices returns the vertex pair of a stop, or false for an unknown name.
func (rg *RouteGraph) StopVertices(name string) (StopVertices, bool) {
	v, ok := rg.stopVertices[name]
	return v, ok
}

// SkippedSpans counts ride spans left out because a leg had no recorded distance.
func (rg *RouteGraph) SkippedSpans() int { return rg.skippedSpans }
