package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscriptions are scoped to a branch; the notifier fans expiry alerts out
// to every subscription registered for that branch.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	BranchID  string    `gorm:"index;size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
