package port

import (
	"context"
	"errors"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

var (
	ErrSnapshotNotFound  = errors.New("snapshot not found")
	ErrSnapshotNotObject = errors.New("snapshot root is not an object")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

type SnapshotRepository interface {
	// LoadSnapshot reads the persisted inventory. It returns ErrSnapshotNotFound
	// when nothing was saved yet, ErrSnapshotNotObject or ErrMalformedSnapshot
	// when the stored data cannot be used at all.
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)

	// SaveSnapshot overwrites the persisted inventory with items, keeping their order.
	SaveSnapshot(ctx context.Context, items []domain.Item) error

	// Location describes where snapshots live, for log messages
	Location() string
}
