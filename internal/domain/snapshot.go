package domain

// Snapshot is the name-keyed, order-preserving form of a loaded catalogue.
// It is what persistence adapters store and what a catalogue is rebuilt from.
type Snapshot struct {
	Stops     []StopRecord
	Buses     []BusRecord
	Distances []DistanceRecord
	Routing   *RoutingSettings
}

type StopRecord struct {
	Name string
	Lat  float64
	Lng  float64
}

type BusRecord struct {
	Name  string
	Stops []string
	Kind  RouteKind
}

type DistanceRecord struct {
	From   string
	To     string
	Meters int
}
