package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
)

type itemRepository struct {
	s *Store
}

func (r *itemRepository) Create(ctx context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	r.s.items[it.ID] = copyItem(it)
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, errs.ErrItemNotFound
	}
	return copyItem(it), nil
}

func (r *itemRepository) ListAvailable(ctx context.Context) ([]*entity.Item, error) {
	return r.list(func(it *entity.Item) bool {
		return it.Approved && it.Status == entity.StatusAvailable
	})
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Item, error) {
	return r.list(func(it *entity.Item) bool {
		return it.OwnerID == ownerID
	})
}

func (r *itemRepository) ListUnapproved(ctx context.Context) ([]*entity.Item, error) {
	return r.list(func(it *entity.Item) bool {
		return !it.Approved
	})
}

func (r *itemRepository) list(match func(*entity.Item) bool) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Item, 0)
	for _, it := range r.s.items {
		if match(it) {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *itemRepository) SetApproval(ctx context.Context, id string, approved bool) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, errs.ErrItemNotFound
	}
	it.Approved = approved
	it.UpdatedAt = time.Now()
	return copyItem(it), nil
}

func (r *itemRepository) MarkRedeemed(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return false, errs.ErrItemNotFound
	}
	if it.Status != entity.StatusAvailable {
		return false, nil
	}
	it.Status = entity.StatusRedeemed
	it.UpdatedAt = time.Now()
	return true, nil
}
