package entity

import (
	"time"
)

// Item lifecycle states. Only StatusAvailable and StatusRedeemed are
// reachable through the redemption path; StatusPending and StatusSwapped
// exist for forward compatibility and carry no redemption semantics.
const (
	StatusAvailable = "available"
	StatusRedeemed  = "redeemed"
	StatusPending   = "pending"
	StatusSwapped   = "swapped"
)

// Item is a listing in the catalog. OwnerID is immutable after creation.
// Price is the item's cost in points and is always positive. Approved is
// flipped only by an administrator; unapproved items are invisible to the
// public catalog and cannot be redeemed.
type Item struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    string
	Type        string
	Size        string
	Condition   string
	Tags        []string
	ImageURL    string
	Price       int64
	Status      string
	Approved    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanBeRedeemed reports whether the item is eligible for redemption.
// Once redeemed an item is terminal; re-approval has no effect.
func (i *Item) CanBeRedeemed() bool {
	return i.Approved && i.Status == StatusAvailable
}
