package ports

import (
	"context"

	"transport-catalogue-service/internal/domain"
)

// Read-side contract the request adapters depend on.
type TransportQueries interface {
	// Return statistics for a bus; false when the bus does not exist.
	BusStat(ctx context.Context, name string) (domain.BusStat, bool)
	// Return the buses visiting a stop; StopStat.Found is false for unknown stops.
	StopStat(ctx context.Context, name string) domain.StopStat
	// Return the fastest trip between two stops.
	Route(ctx context.Context, from, to string) (domain.RouteResult, error)
}
