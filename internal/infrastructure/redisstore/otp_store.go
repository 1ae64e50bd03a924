package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rewearhq/rewear-backend/internal/application"
)

// OTPStore keeps pending registration codes in Redis under a TTL so they
// survive restarts and are shared across instances. A new code for the same
// email overwrites the previous one.
type OTPStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func key(email string) string {
	return "register:otp:" + email
}

func (s *OTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(email), code, ttl).Err()
}

func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	v, err := s.rdb.Get(ctx, key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *OTPStore) Del(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, key(email)).Err()
}

var _ application.OTPStore = (*OTPStore)(nil)
