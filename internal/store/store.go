package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gym-admin-backend/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations. Every method
// returns materialized records; callers hand them to the pure domain
// packages for classification and aggregation.
type Store interface {
	DB() *gorm.DB

	// ListClients returns a branch's roster ordered by creation time
	// descending (newest registration first).
	ListClients(ctx context.Context, branchID string) ([]model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	CreateClient(ctx context.Context, client *model.Client) error
	// UpdateClient applies a partial update and bumps UpdatedAt.
	UpdateClient(ctx context.Context, id string, fields map[string]any) (*model.Client, error)

	// ListCheckins returns a branch's check-ins within [from, to], both
	// bounds inclusive, ordered by timestamp ascending.
	ListCheckins(ctx context.Context, branchID string, from, to time.Time) ([]model.Checkin, error)
	// CreateCheckin records an attendance event, snapshotting the client
	// name and stamping the timestamp server-side.
	CreateCheckin(ctx context.Context, clientID, clientName, branchID string) (*model.Checkin, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
	// now is the write-timestamp source, swappable in tests.
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, now: time.Now}
}

// NewGormStoreWithClock creates a store whose write timestamps come from the
// supplied clock function.
func NewGormStoreWithClock(db *gorm.DB, now func() time.Time) Store {
	return &gormStore{db: db, now: now}
}

// DB exposes the underlying connection for handlers that query directly.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListClients(ctx context.Context, branchID string) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients for branch %s: %w", branchID, err)
	}
	return clients, nil
}

func (s *gormStore) GetClient(ctx context.Context, id string) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client %s: %w", id, err)
	}
	return &client, nil
}

func (s *gormStore) CreateClient(ctx context.Context, client *model.Client) error {
	now := s.now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateClient(ctx context.Context, id string, fields map[string]any) (*model.Client, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = s.now().UTC()

	res := s.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update client %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return s.GetClient(ctx, id)
}

func (s *gormStore) ListCheckins(ctx context.Context, branchID string, from, to time.Time) ([]model.Checkin, error) {
	var checkins []model.Checkin
	err := s.db.WithContext(ctx).
		Where("branch_id = ? AND timestamp >= ? AND timestamp <= ?", branchID, from, to).
		Order("timestamp").
		Find(&checkins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins for branch %s: %w", branchID, err)
	}
	return checkins, nil
}

func (s *gormStore) CreateCheckin(ctx context.Context, clientID, clientName, branchID string) (*model.Checkin, error) {
	stamped := s.now().UTC()
	checkin := model.Checkin{
		ClientID:   clientID,
		ClientName: clientName,
		BranchID:   branchID,
		Timestamp:  &stamped,
	}
	if err := s.db.WithContext(ctx).Create(&checkin).Error; err != nil {
		return nil, fmt.Errorf("failed to create checkin for client %s: %w", clientID, err)
	}
	return &checkin, nil
}
