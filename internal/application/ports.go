package application

import (
	"context"
	"time"
)

// OTPStore is a keyed store of pending registration codes with explicit
// expiry. One code per email; issuing a new code supersedes the old one.
type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the pending code for the email, or "" when none exists or
	// it has expired.
	Get(ctx context.Context, email string) (string, error)
	Del(ctx context.Context, email string) error
}

// Publisher dispatches a message to the outbound queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
