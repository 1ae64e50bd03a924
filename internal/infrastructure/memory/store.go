// Package memory provides in-process implementations of the repository
// ports with the same transactional semantics as the Postgres layer:
// units of work commit all-or-nothing and the item state transition is a
// compare-and-set. The service tests run against it; nothing in the server
// binaries depends on it.
package memory

import (
	"context"
	"sync"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/repository"
)

// Store holds all state behind a pair of locks: mu guards the maps for
// individual operations, txMu serializes units of work so a rolled-back
// snapshot can be restored safely.
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	users map[string]*entity.User
	items map[string]*entity.Item
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
		items: make(map[string]*entity.Item),
	}
}

func (s *Store) Users() repository.UserRepository { return &userRepository{s: s} }
func (s *Store) Items() repository.ItemRepository { return &itemRepository{s: s} }

// WithinTx snapshots the store, runs fn, and restores the snapshot when fn
// fails. Units of work are serialized, which mirrors the row-lock ordering
// a real database imposes on conflicting transactions.
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapUsers, snapItems := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snapUsers, snapItems)
		return err
	}
	return nil
}

func (s *Store) snapshot() (map[string]*entity.User, map[string]*entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make(map[string]*entity.User, len(s.users))
	for id, u := range s.users {
		users[id] = copyUser(u)
	}
	items := make(map[string]*entity.Item, len(s.items))
	for id, it := range s.items {
		items[id] = copyItem(it)
	}
	return users, items
}

func (s *Store) restore(users map[string]*entity.User, items map[string]*entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.items = items
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyItem(it *entity.Item) *entity.Item {
	c := *it
	c.Tags = append([]string(nil), it.Tags...)
	return &c
}

var _ repository.UnitOfWork = (*Store)(nil)
var _ repository.Repositories = (*Store)(nil)
