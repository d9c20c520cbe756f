package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a registered gym member.
type Client struct {
	ID             string `gorm:"primaryKey;size:36" json:"id"`
	BranchID       string `gorm:"index;size:64;not null" json:"branchId"`
	Name           string `gorm:"size:256;not null" json:"name"`
	Phone          string `gorm:"size:32" json:"phone"`
	Email          string `gorm:"size:256" json:"email"`
	MembershipType string `gorm:"size:32" json:"membershipType"`
	// MembershipStart/MembershipEnd are calendar dates. A nil MembershipEnd
	// means the client has no membership.
	MembershipStart *time.Time `json:"membershipStart"`
	MembershipEnd   *time.Time `json:"membershipEnd"`
	// Price charged at registration or last renewal, snapshotted from the
	// branch price table.
	Price     float64   `json:"price"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns an opaque identifier when none was provided.
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
