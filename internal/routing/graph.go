// Package routing builds the wait/board route graph from a catalogue and
// answers time-optimal route queries over it.
package routing

type VertexID int

type EdgeID int

// RouteWeight is the cost of an edge or a path. Paths are ordered by Minutes
// only; Span is carried along for display.
type RouteWeight struct {
	Minutes float64
	Span    int
}

func (w RouteWeight) Add(o RouteWeight) RouteWeight {
	return RouteWeight{Minutes: w.Minutes + o.Minutes, Span: w.Span + o.Span}
}

func (w RouteWeight) Less(o RouteWeight) bool {
	return w.Minutes < o.Minutes
}

type Edge struct {
	From   VertexID
	To     VertexID
	Weight RouteWeight
}

// Graph is a directed weighted graph stored as an edge list plus per-vertex
// incidence lists of outgoing edges.
type Graph struct {
	edges     []Edge
	incidence [][]EdgeID
}

func NewGraph(vertexCount int) *Graph {
	return &Graph{incidence: make([][]EdgeID, vertexCount)}
}

func (g *Graph) AddEdge(e Edge) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.incidence[e.From] = append(g.incidence[e.From], id)
	return id
}

func (g *Graph) VertexCount() int { return len(g.incidence) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// IncidentEdges returns the outgoing edges of v. The slice must not be modified.
func (g *Graph) IncidentEdges(v VertexID) []EdgeID { return g.incidence[v] }
