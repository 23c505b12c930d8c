package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/domain"
	"transport-catalogue-service/internal/platform/obs"
	"transport-catalogue-service/internal/routing"
	"transport-catalogue-service/internal/stats"

	"github.com/bluele/gcache"
)

type routeKey struct{ from, to string }

type TransportOptions struct {
	// Used when the snapshot carries no routing settings of its own.
	Routing domain.RoutingSettings
	// Lifetime of memoized bus statistics; zero keeps them for the process lifetime.
	StatsTTL time.Duration
	// Number of route answers kept in the LRU; zero disables it.
	RouteCacheSize int
}

// TransportService is the query façade over a loaded transport network.
// It implements ports.TransportQueries and is safe for concurrent use.
type TransportService struct {
	catalogue *catalogue.Catalogue
	graph     *routing.RouteGraph
	stats     *stats.Engine
	router    *routing.Router
	routes    gcache.Cache
}

// NewTransportFromSnapshot builds the catalogue and the route graph once and
// returns a service ready to answer queries.
func NewTransportFromSnapshot(snap domain.Snapshot, opts TransportOptions) (*TransportService, error) {
	cat, err := catalogue.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("new transport service: %w", err)
	}

	settings := opts.Routing
	if snap.Routing != nil {
		settings = *snap.Routing
	}

	return NewTransportService(cat, settings, opts)
}

func NewTransportService(
	cat *catalogue.Catalogue,
	settings domain.RoutingSettings,
	opts TransportOptions,
) (*TransportService, error) {
	rg, err := routing.BuildRouteGraph(cat, settings)
	if err != nil {
		return nil, fmt.Errorf("new transport service: %w", err)
	}

	svc := &TransportService{
		catalogue: cat,
		graph:     rg,
		stats:     stats.NewEngine(cat, stats.WithMemo(opts.StatsTTL)),
		router:    routing.NewRouter(rg),
	}

	if opts.RouteCacheSize > 0 {
		svc.routes = gcache.New(opts.RouteCacheSize).LRU().Build()
	}

	return svc, nil
}

func (s *TransportService) Catalogue() *catalogue.Catalogue { return s.catalogue }

func (s *TransportService) RoutingSettings() domain.RoutingSettings { return s.graph.Settings() }

func (s *TransportService) BusStat(ctx context.Context, name string) (domain.BusStat, bool) {
	defer obs.Time(ctx, "transport.BusStat")(nil)

	return s.stats.ComputeBusStat(name)
}

func (s *TransportService) StopStat(ctx context.Context, name string) domain.StopStat {
	defer obs.Time(ctx, "transport.StopStat")(nil)

	return s.stats.ComputeStopStat(name)
}

// Route returns the fastest trip between two stops. Answers may be served from
// the LRU; their Items slice is shared and must be treated as read-only.
func (s *TransportService) Route(ctx context.Context, from, to string) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "transport.Route")(&err)

	key := routeKey{from: from, to: to}
	if s.routes != nil {
		if v, err := s.routes.Get(key); err == nil {
			return v.(domain.RouteResult), nil
		} else if !errors.Is(err, gcache.KeyNotFoundError) {
			return domain.RouteResult{}, fmt.Errorf("route cache get %q->%q: %w", from, to, err)
		}
	}

	res, err := s.router.FindRoute(from, to)
	if err != nil {
		return domain.RouteResult{}, err
	}

	if s.routes != nil {
		if err := s.routes.Set(key, res); err != nil {
			return domain.RouteResult{}, fmt.Errorf("route cache set %q->%q: %w", from, to, err)
		}
	}

	return res, nil
}
