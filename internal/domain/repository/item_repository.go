package repository

import (
	"context"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
)

// ItemRepository defines the interface for catalog-store operations.
type ItemRepository interface {
	Create(ctx context.Context, it *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)

	// ListAvailable returns approved items still in the available state,
	// newest first.
	ListAvailable(ctx context.Context) ([]*entity.Item, error)
	// ListByOwner returns every item the owner has listed, any state.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error)
	// ListUnapproved returns the administrator review queue, newest first.
	ListUnapproved(ctx context.Context) ([]*entity.Item, error)

	// SetApproval flips the approval flag. Setting the current value again
	// is a no-op success.
	SetApproval(ctx context.Context, id string, approved bool) (*entity.Item, error)

	// MarkRedeemed transitions the item from available to redeemed with a
	// conditional write keyed on the current state. It reports false when
	// the item was not available, which is how a concurrent redeemer loses
	// the race. This is the serialization point of the redemption engine.
	MarkRedeemed(ctx context.Context, id string) (bool, error)
}
