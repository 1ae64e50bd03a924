package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rewearhq/rewear-backend/internal/application"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore is an in-process OTP store with explicit expiry. Now is
// overridable so tests can step past the validity window.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	Now     func() time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{entries: make(map[string]otpEntry), Now: time.Now}
}

func (s *OTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = otpEntry{code: code, expiresAt: s.Now().Add(ttl)}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return "", nil
	}
	if s.Now().After(e.expiresAt) {
		delete(s.entries, email)
		return "", nil
	}
	return e.code, nil
}

func (s *OTPStore) Del(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

var _ application.OTPStore = (*OTPStore)(nil)
