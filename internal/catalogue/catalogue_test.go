package catalogue

import (
	"errors"
	"testing"

	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	require.NoError(t, b.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0}))
	require.NoError(t, b.AddStop("B", geo.Coordinates{Lat: 0, Lng: 0.01}))
	require.NoError(t, b.AddStop("C", geo.Coordinates{Lat: 0, Lng: 0.02}))
	require.NoError(t, b.AddStop("Lonely", geo.Coordinates{Lat: 1, Lng: 1}))
	return b
}

func TestBuilderAddStopDuplicate(t *testing.T) {
	b := newTestBuilder(t)

	err := b.AddStop("A", geo.Coordinates{Lat: 5, Lng: 5})
	if !errors.Is(err, ErrDuplicateStop) {
		t.Fatalf("err = %v, want ErrDuplicateStop", err)
	}

	cat, err := b.Build()
	require.NoError(t, err)

	stop, ok := cat.FindStop("A")
	require.True(t, ok)
	assert.Equal(t, geo.Coordinates{Lat: 0, Lng: 0}, stop.Coords, "duplicate must not overwrite the first stop")
}

func TestBuilderAddBusErrors(t *testing.T) {
	tests := []struct {
		name  string
		bus   string
		stops []string
		want  error
	}{
		{name: "unknown stop", bus: "9", stops: []string{"A", "Nowhere"}, want: ErrUnknownStop},
		{name: "duplicate bus", bus: "1", stops: []string{"A"}, want: ErrDuplicateBus},
		{name: "empty route", bus: "10", stops: nil, want: ErrEmptyRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(t)
			require.NoError(t, b.AddBus("1", []string{"A", "B"}, domain.RoundTrip))

			err := b.AddBus(tt.bus, tt.stops, domain.RoundTrip)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilderFailedBusLeavesNoTrace(t *testing.T) {
	b := newTestBuilder(t)
	require.Error(t, b.AddBus("7", []string{"A", "Missing"}, domain.RoundTrip))

	cat, err := b.Build()
	require.NoError(t, err)

	_, ok := cat.FindBus("7")
	assert.False(t, ok)

	buses, ok := cat.BusesThrough("A")
	require.True(t, ok)
	assert.Empty(t, buses)
}

func TestDistanceIsDirected(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.SetDistance("A", "B", 1000))
	require.NoError(t, b.SetDistance("A", "C", 5))
	require.NoError(t, b.SetDistance("A", "C", 1500))

	cat, err := b.Build()
	require.NoError(t, err)

	d, ok := cat.GetDistance("A", "B")
	assert.True(t, ok)
	assert.Equal(t, 1000, d)

	_, ok = cat.GetDistance("B", "A")
	assert.False(t, ok, "reverse distance must stay unknown")

	d, ok = cat.GetDistance("A", "C")
	assert.True(t, ok)
	assert.Equal(t, 1500, d, "later SetDistance overwrites")

	_, ok = cat.GetDistance("A", "Z")
	assert.False(t, ok)
}

func TestSetDistanceValidation(t *testing.T) {
	b := newTestBuilder(t)

	assert.ErrorIs(t, b.SetDistance("A", "Z", 10), ErrUnknownStop)
	assert.Error(t, b.SetDistance("A", "B", -1))
	assert.False(t, b.HasDistance("A", "B"))

	require.NoError(t, b.SetDistance("A", "B", 0))
	assert.True(t, b.HasDistance("A", "B"))
	assert.False(t, b.HasDistance("B", "A"))
}

func TestBusesThroughAndStopsServedBy(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddBus("750", []string{"A", "B", "C"}, domain.ThereAndBack))
	require.NoError(t, b.AddBus("256", []string{"B", "C", "B"}, domain.RoundTrip))

	cat, err := b.Build()
	require.NoError(t, err)

	buses, ok := cat.BusesThrough("B")
	require.True(t, ok)
	assert.Equal(t, []string{"256", "750"}, buses)

	buses, ok = cat.BusesThrough("Lonely")
	require.True(t, ok)
	assert.NotNil(t, buses)
	assert.Empty(t, buses)

	_, ok = cat.BusesThrough("Z")
	assert.False(t, ok)

	stops, ok := cat.StopsServedBy("750")
	require.True(t, ok)
	require.Len(t, stops, 3)
	assert.Equal(t, "A", stops[0].Name)
	assert.Equal(t, "C", stops[2].Name)

	withBuses := cat.StopsWithBuses()
	names := make([]string, 0, len(withBuses))
	for _, s := range withBuses {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)

	sorted := cat.Buses()
	require.Len(t, sorted, 2)
	assert.Equal(t, "256", sorted[0].Name)
}

func TestBuildSealsBuilder(t *testing.T) {
	b := newTestBuilder(t)
	_, err := b.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddStop("D", geo.Coordinates{}), ErrSealed)
	assert.ErrorIs(t, b.AddBus("1", []string{"A"}, domain.RoundTrip), ErrSealed)
	assert.ErrorIs(t, b.SetDistance("A", "B", 1), ErrSealed)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrSealed)
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.SetDistance("A", "B", 500))
	require.NoError(t, b.SetDistance("B", "A", 700))
	require.NoError(t, b.AddBus("2", []string{"A", "B"}, domain.ThereAndBack))

	cat, err := b.Build()
	require.NoError(t, err)

	snap := cat.Snapshot()
	require.Len(t, snap.Stops, 4)
	require.Len(t, snap.Distances, 2)
	assert.Equal(t, domain.DistanceRecord{From: "A", To: "B", Meters: 500}, snap.Distances[0])

	rebuilt, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, rebuilt.Snapshot())

	stop, ok := rebuilt.FindStop("C")
	require.True(t, ok)
	orig, _ := cat.FindStop("C")
	assert.Equal(t, orig.ID, stop.ID, "handles survive a snapshot round trip")
}
