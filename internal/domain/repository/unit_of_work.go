package repository

import "context"

// Repositories bundles the stores that participate in one transaction.
type Repositories interface {
	Users() UserRepository
	Items() ItemRepository
}

// UnitOfWork runs fn against transaction-bound repositories. Every write fn
// performs is committed together or not at all; returning an error rolls the
// whole unit back. The redemption engine relies on this for its
// all-or-nothing contract across the identity and catalog stores.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
