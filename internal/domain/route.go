package domain

// Global parameters of the route graph.
type RoutingSettings struct {
	// Minutes spent waiting every time a passenger boards a bus.
	BusWaitTime float64 `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=1,lte=1000"`
	// Bus velocity in km/h.
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity" validate:"gte=1,lte=1000"`
}

type RouteItemKind uint8

const (
	WaitItem RouteItemKind = iota
	RideItem
)

func (k RouteItemKind) String() string {
	if k == RideItem {
		return "Bus"
	}
	return "Wait"
}

// Represents a single segment of a planned trip.
// A Wait item names the stop where the passenger boards; a Ride item names
// the bus and how many stops it covers without the passenger getting off.
type RouteItem struct {
	Kind      RouteItemKind
	StopName  string
	BusName   string
	SpanCount int
	Minutes   float64
}

// Represents the answer to a from/to route query.
// Found is false when the destination cannot be reached; a trip from a stop
// to itself is found with no items and zero time.
type RouteResult struct {
	From         string
	To           string
	Found        bool
	TotalMinutes float64
	Items        []RouteItem
}
