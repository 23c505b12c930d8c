package requests

import (
	"fmt"
	"sort"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
)

// Reader turns base requests into catalogue data.
//
// Stops are applied first, then road distances, then buses, so the order of
// base requests inside the document does not matter. When MirrorReverseDistances
// is set, a distance declared only as A→B is also recorded as B→A; an explicit
// B→A declaration always wins.
type Reader struct {
	MirrorReverseDistances bool
}

func NewReader() Reader {
	return Reader{MirrorReverseDistances: true}
}

func (r Reader) Snapshot(doc Document) domain.Snapshot {
	var snap domain.Snapshot

	type pair struct{ from, to string }
	declared := make(map[pair]struct{})

	for _, req := range doc.BaseRequests {
		if req.Type != TypeStop {
			continue
		}
		snap.Stops = append(snap.Stops, domain.StopRecord{
			Name: req.Name,
			Lat:  req.Latitude,
			Lng:  req.Longitude,
		})

		for _, to := range sortedKeys(req.RoadDistances) {
			snap.Distances = append(snap.Distances, domain.DistanceRecord{
				From:   req.Name,
				To:     to,
				Meters: req.RoadDistances[to],
			})
			declared[pair{req.Name, to}] = struct{}{}
		}
	}

	if r.MirrorReverseDistances {
		explicit := len(snap.Distances)
		for _, d := range snap.Distances[:explicit] {
			if _, ok := declared[pair{d.To, d.From}]; ok {
				continue
			}
			declared[pair{d.To, d.From}] = struct{}{}
			snap.Distances = append(snap.Distances, domain.DistanceRecord{
				From:   d.To,
				To:     d.From,
				Meters: d.Meters,
			})
		}
	}

	for _, req := range doc.BaseRequests {
		if req.Type != TypeBus {
			continue
		}
		snap.Buses = append(snap.Buses, domain.BusRecord{
			Name:  req.Name,
			Stops: req.Stops,
			Kind:  domain.RouteKindFromRoundTrip(req.IsRoundtrip),
		})
	}

	if doc.RoutingSettings != nil {
		settings := *doc.RoutingSettings
		snap.Routing = &settings
	}

	return snap
}

// Load builds a read-only catalogue from the document's base requests.
func (r Reader) Load(doc Document) (*catalogue.Catalogue, error) {
	cat, err := catalogue.FromSnapshot(r.Snapshot(doc))
	if err != nil {
		return nil, fmt.Errorf("load base requests: %w", err)
	}
	return cat, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
