package farm

import (
	"context"

	"milkledger/internal/core/id"
)

// Repository defines persistence for the production log. List methods
// return records ordered by date ascending.
type Repository interface {
	// Upsert inserts or overwrites the record for its date.
	Upsert(ctx context.Context, r *FarmRecord) error
	GetByDate(ctx context.Context, date string) (*FarmRecord, error)
	List(ctx context.Context) ([]FarmRecord, error)
	// ListRange returns records with from <= date < to.
	ListRange(ctx context.Context, from, to string) ([]FarmRecord, error)
	Delete(ctx context.Context, recordID id.ID) error
}
