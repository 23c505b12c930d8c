package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"transport-catalogue-service/internal/domain"
)

var ErrNoSnapshot = errors.New("no snapshot stored")

// SQL-backed implementation of the SnapshotRepository port.
// The same queries serve SQLite and Postgres; only placeholders differ.
type SQLSnapshotRepository struct {
	DB   *sql.DB
	bind func(query string) string
}

func NewSqliteSnapshotRepository(db *sql.DB) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{DB: db, bind: func(q string) string { return q }}
}

func NewPostgresSnapshotRepository(db *sql.DB) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{DB: db, bind: dollarPlaceholders}
}

// Rewrite ? placeholders to $1, $2, ...
func dollarPlaceholders(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLSnapshotRepository) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	if s.DB == nil {
		return errors.New("save snapshot: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"bus_stops", "buses", "road_distances", "stops", "routing_settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("save snapshot: clear %s: %w", table, err)
		}
	}

	insertStop := s.bind(`INSERT INTO stops (name, seq, lat, lng) VALUES (?, ?, ?, ?);`)
	for i, st := range snap.Stops {
		if _, err := tx.ExecContext(ctx, insertStop, st.Name, i, st.Lat, st.Lng); err != nil {
			return fmt.Errorf("save snapshot: insert stop %q: %w", st.Name, err)
		}
	}

	insertDistance := s.bind(`INSERT INTO road_distances (from_stop, to_stop, seq, meters) VALUES (?, ?, ?, ?);`)
	for i, d := range snap.Distances {
		if _, err := tx.ExecContext(ctx, insertDistance, d.From, d.To, i, d.Meters); err != nil {
			return fmt.Errorf("save snapshot: insert distance %q->%q: %w", d.From, d.To, err)
		}
	}

	insertBus := s.bind(`INSERT INTO buses (name, seq, kind) VALUES (?, ?, ?);`)
	insertBusStop := s.bind(`INSERT INTO bus_stops (bus_name, stop_index, stop_name) VALUES (?, ?, ?);`)
	for i, bus := range snap.Buses {
		if _, err := tx.ExecContext(ctx, insertBus, bus.Name, i, bus.Kind.String()); err != nil {
			return fmt.Errorf("save snapshot: insert bus %q: %w", bus.Name, err)
		}
		for j, stop := range bus.Stops {
			if _, err := tx.ExecContext(ctx, insertBusStop, bus.Name, j, stop); err != nil {
				return fmt.Errorf("save snapshot: insert bus %q stop #%d: %w", bus.Name, j, err)
			}
		}
	}

	if snap.Routing != nil {
		insertRouting := s.bind(`INSERT INTO routing_settings (id, bus_wait_time, bus_velocity) VALUES (1, ?, ?);`)
		if _, err := tx.ExecContext(ctx, insertRouting, snap.Routing.BusWaitTime, snap.Routing.BusVelocity); err != nil {
			return fmt.Errorf("save snapshot: insert routing settings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit tx: %w", err)
	}

	return nil
}

// Return the stored snapshot, or ErrNoSnapshot when nothing has been saved.
func (s *SQLSnapshotRepository) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	if s.DB == nil {
		return domain.Snapshot{}, errors.New("load snapshot: DB is nil")
	}

	var snap domain.Snapshot

	stops, err := s.loadStops(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Stops = stops

	distances, err := s.loadDistances(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Distances = distances

	buses, err := s.loadBuses(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Buses = buses

	routing, err := s.loadRouting(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Routing = routing

	if len(snap.Stops) == 0 && len(snap.Buses) == 0 && snap.Routing == nil {
		return domain.Snapshot{}, ErrNoSnapshot
	}

	return snap, nil
}

func (s *SQLSnapshotRepository) loadStops(ctx context.Context) ([]domain.StopRecord, error) {
	query := `
	SELECT
		name,
		lat,
		lng
	FROM stops
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query stops: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.StopRecord, 0, 64)
	for rows.Next() {
		var st domain.StopRecord
		if err := rows.Scan(&st.Name, &st.Lat, &st.Lng); err != nil {
			return nil, fmt.Errorf("load snapshot: scan stop: %w", err)
		}
		stops = append(stops, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: stop rows: %w", err)
	}

	return stops, nil
}

func (s *SQLSnapshotRepository) loadDistances(ctx context.Context) ([]domain.DistanceRecord, error) {
	query := `
	SELECT
		from_stop,
		to_stop,
		meters
	FROM road_distances
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query distances: %w", err)
	}
	defer rows.Close()

	distances := make([]domain.DistanceRecord, 0, 64)
	for rows.Next() {
		var d domain.DistanceRecord
		if err := rows.Scan(&d.From, &d.To, &d.Meters); err != nil {
			return nil, fmt.Errorf("load snapshot: scan distance: %w", err)
		}
		distances = append(distances, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: distance rows: %w", err)
	}

	return distances, nil
}

func (s *SQLSnapshotRepository) loadBuses(ctx context.Context) ([]domain.BusRecord, error) {
	query := `
	SELECT
		b.name,
		b.kind,
		bs.stop_name
	FROM buses b
	JOIN bus_stops bs ON bs.bus_name = b.name
	ORDER BY b.seq, bs.stop_index;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query buses: %w", err)
	}
	defer rows.Close()

	buses := make([]domain.BusRecord, 0, 16)
	for rows.Next() {
		var name, kind, stop string
		if err := rows.Scan(&name, &kind, &stop); err != nil {
			return nil, fmt.Errorf("load snapshot: scan bus stop: %w", err)
		}

		if n := len(buses); n == 0 || buses[n-1].Name != name {
			k, err := domain.ParseRouteKind(kind)
			if err != nil {
				return nil, fmt.Errorf("load snapshot: bus %q: %w", name, err)
			}
			buses = append(buses, domain.BusRecord{Name: name, Kind: k})
		}
		last := &buses[len(buses)-1]
		last.Stops = append(last.Stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: bus rows: %w", err)
	}

	return buses, nil
}

func (s *SQLSnapshotRepository) loadRouting(ctx context.Context) (*domain.RoutingSettings, error) {
	query := `SELECT bus_wait_time, bus_velocity FROM routing_settings WHERE id = 1;`

	var rs domain.RoutingSettings
	err := s.DB.QueryRowContext(ctx, query).Scan(&rs.BusWaitTime, &rs.BusVelocity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query routing settings: %w", err)
	}

	return &rs, nil
}

// NewSnapshotRepository picks the placeholder dialect for a storage driver.
func NewSnapshotRepository(driver string, db *sql.DB) (*SQLSnapshotRepository, error) {
	switch driver {
	case "sqlite":
		return NewSqliteSnapshotRepository(db), nil
	case "postgres":
		return NewPostgresSnapshotRepository(db), nil
	default:
		return nil, fmt.Errorf("new snapshot repository: unsupported driver %q", driver)
	}
}
