package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checkin is a single attendance event. Records are immutable once created.
type Checkin struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	ClientID string `gorm:"index;size:36;not null" json:"clientId"`
	// ClientName is a snapshot of the client's name at check-in time. It is
	// intentionally never re-joined against the current client record.
	ClientName string `gorm:"size:256;not null" json:"clientName"`
	BranchID   string `gorm:"index;size:64;not null" json:"branchId"`
	// Timestamp is stamped by the store on write. It stays nil until the
	// write has been acknowledged.
	Timestamp *time.Time `gorm:"index" json:"timestamp"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (c *Checkin) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
