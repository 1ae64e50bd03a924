package repository

import (
	"context"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
)

// UserRepository defines the interface for identity-store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// AdjustPoints applies a relative balance change and returns the new
	// balance. A negative delta that would push the balance below zero
	// applies nothing and returns errs.ErrInsufficientPoints. The update is
	// a single guarded write, never a read-then-write.
	AdjustPoints(ctx context.Context, id string, delta int64) (int64, error)
}
