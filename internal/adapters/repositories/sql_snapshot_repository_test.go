package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Stops: []domain.StopRecord{
			{Name: "Zoo", Lat: 55.61, Lng: 37.2},
			{Name: "Airport", Lat: 55.63, Lng: 37.21},
			{Name: "Market", Lat: 55.62, Lng: 37.25},
		},
		Distances: []domain.DistanceRecord{
			{From: "Zoo", To: "Airport", Meters: 3900},
			{From: "Airport", To: "Market", Meters: 2100},
			{From: "Market", To: "Zoo", Meters: 1800},
		},
		Buses: []domain.BusRecord{
			{Name: "750", Stops: []string{"Zoo", "Airport", "Market"}, Kind: domain.ThereAndBack},
			{Name: "256", Stops: []string{"Zoo", "Airport", "Market", "Zoo"}, Kind: domain.RoundTrip},
		},
		Routing: &domain.RoutingSettings{BusWaitTime: 6, BusVelocity: 40},
	}
}

func newSqliteRepo(t *testing.T) *SQLSnapshotRepository {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "catalogue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return NewSqliteSnapshotRepository(conn)
}

func testRoundTrip(t *testing.T, repo *SQLSnapshotRepository) {
	ctx := context.Background()
	want := sampleSnapshot()

	require.NoError(t, repo.SaveSnapshot(ctx, want))
	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving again replaces rather than appends.
	want.Buses = want.Buses[:1]
	want.Routing = nil
	require.NoError(t, repo.SaveSnapshot(ctx, want))
	got, err = repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSqliteSnapshotRoundTrip(t *testing.T) {
	testRoundTrip(t, newSqliteRepo(t))
}

func TestPostgresSnapshotRoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(context.Background(), conn))
	testRoundTrip(t, NewPostgresSnapshotRepository(conn))
}

func TestLoadSnapshotEmpty(t *testing.T) {
	_, err := newSqliteRepo(t).LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestInitSchemaIdempotent(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "catalogue.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(context.Background(), conn))
	require.NoError(t, InitSchema(context.Background(), conn))
}

func TestCatalogueSurvivesPersistence(t *testing.T) {
	ctx := context.Background()
	repo := newSqliteRepo(t)

	orig, err := catalogue.FromSnapshot(sampleSnapshot())
	require.NoError(t, err)
	require.NoError(t, repo.SaveSnapshot(ctx, orig.Snapshot()))

	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	restored, err := catalogue.FromSnapshot(snap)
	require.NoError(t, err)

	for _, name := range []string{"Zoo", "Airport", "Market"} {
		a, _ := orig.FindStop(name)
		b, _ := restored.FindStop(name)
		assert.Equal(t, a, b)
	}
	d, ok := restored.GetDistance("Market", "Zoo")
	assert.True(t, ok)
	assert.Equal(t, 1800, d)
}

func TestSeedFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.json")
	body := `{"base_requests": [
		{"type": "Stop", "name": "A", "latitude": 1, "longitude": 2, "road_distances": {"B": 100}},
		{"type": "Stop", "name": "B", "latitude": 1, "longitude": 3},
		{"type": "Bus", "name": "1", "stops": ["A", "B"], "is_roundtrip": false}
	], "routing_settings": {"bus_wait_time": 3, "bus_velocity": 30}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	repo := newSqliteRepo(t)
	require.NoError(t, SeedFromJSON(context.Background(), repo, path))

	snap, err := repo.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Stops, 2)
	assert.Len(t, snap.Distances, 2)
	require.Len(t, snap.Buses, 1)
	assert.Equal(t, domain.ThereAndBack, snap.Buses[0].Kind)
	assert.Equal(t, &domain.RoutingSettings{BusWaitTime: 3, BusVelocity: 30}, snap.Routing)
}

func TestSeedFromJSONRejectsBrokenData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.json")
	body := `{"base_requests": [{"type": "Bus", "name": "1", "stops": ["Ghost"], "is_roundtrip": true}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	repo := newSqliteRepo(t)
	assert.Error(t, SeedFromJSON(context.Background(), repo, path))

	_, err := repo.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestDollarPlaceholders(t *testing.T) {
	got := dollarPlaceholders(`INSERT INTO stops (name, seq) VALUES (?, ?);`)
	assert.Equal(t, `INSERT INTO stops (name, seq) VALUES ($1, $2);`, got)
}

func TestNewSnapshotRepositoryUnknownDriver(t *testing.T) {
	_, err := NewSnapshotRepository("mysql", nil)
	assert.Error(t, err)
}
