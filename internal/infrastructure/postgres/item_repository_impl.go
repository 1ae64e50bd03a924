package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	"github.com/rewearhq/rewear-backend/internal/domain/repository"
)

const itemColumns = `id, owner_id, title, description, category, item_type, size, condition,
		tags, image_url, price, status, approved, created_at, updated_at`

type ItemRepository struct {
	db querier
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: pool}
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO items (owner_id, title, description, category, item_type, size, condition,
			tags, image_url, price, status, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, it.OwnerID, it.Title, it.Description, it.Category, it.Type, it.Size, it.Condition,
		it.Tags, it.ImageURL, it.Price, it.Status, it.Approved)

	return row.Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1
	`, id))
}

func (r *ItemRepository) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE approved = true AND status = $1
		ORDER BY created_at DESC
	`, entity.StatusAvailable)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *ItemRepository) ListUnapproved(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE approved = false
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *ItemRepository) SetApproval(ctx context.Context, id string, approved bool) (*entity.Item, error) {
	return scanItem(r.db.QueryRow(ctx, `
		UPDATE items
		SET approved = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+itemColumns+`
	`, id, approved))
}

// MarkRedeemed is the compare-and-set transition. The WHERE clause on the
// current state guarantees at most one caller ever flips the item.
func (r *ItemRepository) MarkRedeemed(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE items
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`, id, entity.StatusRedeemed, entity.StatusAvailable)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	it := &entity.Item{}
	if err := row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.Category,
		&it.Type, &it.Size, &it.Condition, &it.Tags, &it.ImageURL, &it.Price,
		&it.Status, &it.Approved, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()
	items := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
