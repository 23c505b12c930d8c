package ports

import (
	"context"

	"transport-catalogue-service/internal/domain"
)

// Port: a boundary for persisting and restoring catalogue snapshots.
type SnapshotRepository interface {
	// Replace the stored snapshot with the given one.
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
	// Retrieve the stored snapshot.
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
}
