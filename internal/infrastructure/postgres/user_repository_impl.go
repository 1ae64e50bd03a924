package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	"github.com/rewearhq/rewear-backend/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db querier
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, points, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Points, u.Role)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, points, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, points, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Points, &u.Role,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// AdjustPoints applies a relative balance change in a single guarded UPDATE.
// The points >= 0 condition (and the matching CHECK constraint) make an
// overdraft impossible regardless of interleaving.
func (r *UserRepository) AdjustPoints(ctx context.Context, id string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET points = points + $2, updated_at = now()
		WHERE id = $1 AND points + $2 >= 0
		RETURNING points
	`, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if delta < 0 {
				return 0, errs.ErrInsufficientPoints
			}
			return 0, errs.ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
