package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rewearhq/rewear-backend/internal/domain/repository"
)

// UnitOfWork runs a function against transaction-bound repositories. Commit
// happens only when fn returns nil; any error rolls everything back, so the
// redemption engine's three writes land together or not at all.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

type txRepositories struct {
	users *UserRepository
	items *ItemRepository
}

func (t *txRepositories) Users() repository.UserRepository { return t.users }
func (t *txRepositories) Items() repository.ItemRepository { return t.items }

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &txRepositories{
		users: &UserRepository{db: tx},
		items: &ItemRepository{db: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
