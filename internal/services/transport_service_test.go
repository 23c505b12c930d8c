package services

import (
	"context"
	"testing"

	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/ports"
	"transport-catalogue-service/internal/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TransportQueries = (*TransportService)(nil)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Stops: []domain.StopRecord{
			{Name: "A", Lat: 0, Lng: 0},
			{Name: "B", Lat: 0, Lng: 0.01},
			{Name: "C", Lat: 0, Lng: 0.02},
		},
		Distances: []domain.DistanceRecord{
			{From: "A", To: "B", Meters: 1000},
			{From: "B", To: "C", Meters: 1000},
		},
		Buses: []domain.BusRecord{
			{Name: "1", Stops: []string{"A", "B", "C"}, Kind: domain.RoundTrip},
		},
	}
}

func TestTransportServiceQueries(t *testing.T) {
	svc, err := NewTransportFromSnapshot(testSnapshot(), TransportOptions{
		Routing:        domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
		RouteCacheSize: 8,
	})
	require.NoError(t, err)
	ctx := context.Background()

	st, ok := svc.BusStat(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, 2000, st.RoadLength)

	_, ok = svc.BusStat(ctx, "2")
	assert.False(t, ok)

	stop := svc.StopStat(ctx, "B")
	assert.True(t, stop.Found)
	assert.Equal(t, []string{"1"}, stop.Buses)

	first, err := svc.Route(ctx, "A", "C")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, first.TotalMinutes, 1e-9)

	cached, err := svc.Route(ctx, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	_, err = svc.Route(ctx, "A", "Z")
	assert.ErrorIs(t, err, routing.ErrUnknownStop)
}

func TestSnapshotRoutingSettingsTakePrecedence(t *testing.T) {
	snap := testSnapshot()
	snap.Routing = &domain.RoutingSettings{BusWaitTime: 2, BusVelocity: 60}

	svc, err := NewTransportFromSnapshot(snap, TransportOptions{
		Routing: domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
	})
	require.NoError(t, err)

	assert.Equal(t, *snap.Routing, svc.RoutingSettings())

	res, err := svc.Route(context.Background(), "A", "C")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.TotalMinutes, 1e-9)
}

func TestNewTransportFromSnapshotRejectsBadData(t *testing.T) {
	snap := testSnapshot()
	snap.Buses = append(snap.Buses, domain.BusRecord{Name: "9", Stops: []string{"A", "Q"}})

	_, err := NewTransportFromSnapshot(snap, TransportOptions{
		Routing: domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
	})
	assert.Error(t, err)
}

func TestRouteCacheKeepsNamesWithSeparatorsApart(t *testing.T) {
	snap := domain.Snapshot{
		Stops: []domain.StopRecord{
			{Name: "A|B", Lat: 0, Lng: 0},
			{Name: "C", Lat: 0, Lng: 0.01},
			{Name: "A", Lat: 1, Lng: 0},
			{Name: "B|C", Lat: 1, Lng: 0.01},
		},
		Distances: []domain.DistanceRecord{
			{From: "A|B", To: "C", Meters: 1000},
		},
		Buses: []domain.BusRecord{
			{Name: "1", Stops: []string{"A|B", "C"}, Kind: domain.RoundTrip},
		},
	}

	svc, err := NewTransportFromSnapshot(snap, TransportOptions{
		Routing:        domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
		RouteCacheSize: 8,
	})
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Route(ctx, "A|B", "C")
	require.NoError(t, err)
	assert.True(t, first.Found)

	second, err := svc.Route(ctx, "A", "B|C")
	require.NoError(t, err)
	assert.False(t, second.Found)
	assert.Equal(t, "A", second.From)
	assert.Equal(t, "B|C", second.To)
}
