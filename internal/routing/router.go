package routing

import (
	"container/heap"
	"fmt"
	"math"

	"transport-catalogue-service/internal/domain"
)

// Router answers route queries over an immutable RouteGraph.
// Each query allocates its own search state, so one Router serves any number
// of concurrent callers.
type Router struct {
	rg *RouteGraph
}

func NewRouter(rg *RouteGraph) *Router {
	return &Router{rg: rg}
}

// FindRoute returns the fastest trip from one stop to another.
//
// Unknown stop names fail with ErrUnknownStop. An unreachable destination is
// not an error: the result comes back with Found set to false.
func (r *Router) FindRoute(from, to string) (domain.RouteResult, error) {
	src, ok := r.rg.StopVertices(from)
	if !ok {
		return domain.RouteResult{}, fmt.Errorf("find route: stop %q: %w", from, ErrUnknownStop)
	}

	dst, ok := r.rg.StopVertices(to)
	if !ok {
		return domain.RouteResult{}, fmt.Errorf("find route: stop %q: %w", to, ErrUnknownStop)
	}

	res := domain.RouteResult{From: from, To: to}
	if from == to {
		res.Found = true
		res.Items = []domain.RouteItem{}
		return res, nil
	}

	edges, total, ok := r.shortestPath(src.Wait, dst.Wait)
	if !ok {
		return res, nil
	}

	res.Found = true
	res.TotalMinutes = total.Minutes
	res.Items = make([]domain.RouteItem, 0, len(edges))
	for _, id := range edges {
		res.Items = append(res.Items, r.routeItem(r.rg.EdgeInfo(id)))
	}

	return res, nil
}

func (r *Router) routeItem(info EdgeInfo) domain.RouteItem {
	cat := r.rg.cat
	if info.Kind == BoardEdge {
		return domain.RouteItem{
			Kind:     domain.WaitItem,
			StopName: cat.Stop(info.Stop).Name,
			Minutes:  info.Minutes,
		}
	}
	return domain.RouteItem{
		Kind:      domain.RideItem,
		StopName:  cat.Stop(info.Stop).Name,
		BusName:   cat.Bus(info.Bus).Name,
		SpanCount: info.Span,
		Minutes:   info.Minutes,
	}
}

type queueItem struct {
	vertex  VertexID
	minutes float64
}

type vertexQueue []queueItem

func (q vertexQueue) Len() int           { return len(q) }
func (q vertexQueue) Less(i, j int) bool { return q[i].minutes < q[j].minutes }
func (q vertexQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *vertexQueue) Push(x any)        { *q = append(*q, x.(queueItem)) }
func (q *vertexQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// shortestPath runs Dijkstra from src and stops once dst is settled.
// It returns the edges of the path in travel order.
func (r *Router) shortestPath(src, dst VertexID) ([]EdgeID, RouteWeight, bool) {
	g := r.rg.graph
	n := g.VertexCount()

	dist := make([]RouteWeight, n)
	for i := range dist {
		dist[i].Minutes = math.Inf(1)
	}
	prev := make([]EdgeID, n)
	for i := range prev {
		prev[i] = -1
	}
	settled := make([]bool, n)

	dist[src] = RouteWeight{}
	q := &vertexQueue{{vertex: src}}

	for q.Len() > 0 {
		cur := heap.Pop(q).(queueItem)
		u := cur.vertex
		if settled[u] {
			continue
		}
		settled[u] = true

		if u == dst {
			break
		}

		for _, id := range g.IncidentEdges(u) {
			e := g.Edge(id)
			if settled[e.To] {
				continue
			}

			cand := dist[u].Add(e.Weight)
			if cand.Less(dist[e.To]) {
				dist[e.To] = cand
				prev[e.To] = id
				heap.Push(q, queueItem{vertex: e.To, minutes: cand.Minutes})
			}
		}
	}

	if !settled[dst] {
		return nil, RouteWeight{}, false
	}

	var path []EdgeID
	for v := dst; v != src; {
		id := prev[v]
		path = append(path, id)
		v = g.Edge(id).From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[dst], true
}
