// Package storage provides abstractions for exporting library snapshots.
package storage

import (
	"context"

	"github.com/mmynk/biblio/internal/models"
)

// SnapshotStore defines the interface for snapshot persistence.
// This abstraction allows swapping export backends (SQLite, JSON, etc.)
// without changing the library facade.
type SnapshotStore interface {
	// SaveSnapshot replaces the stored snapshot with snap.
	SaveSnapshot(ctx context.Context, snap *models.Snapshot) error

	// LoadSnapshot returns the stored snapshot.
	// Returns nil and an error if nothing has been saved.
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
