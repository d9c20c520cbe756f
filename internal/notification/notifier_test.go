package notification

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/model"
	"gym-admin-backend/internal/store"
)

// stubStore serves canned rosters per branch without a database.
type stubStore struct {
	store.Store
	clients map[string][]model.Client
	err     error
}

func (s *stubStore) ListClients(_ context.Context, branchID string) ([]model.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.clients[branchID], nil
}

func (s *stubStore) DB() *gorm.DB { return nil }

func sweepConfig() *config.Config {
	return &config.Config{
		Branches: []config.Branch{{ID: "centro"}, {ID: "norte"}},
	}
}

func clientEnding(name string, end time.Time) model.Client {
	return model.Client{Name: name, MembershipEnd: &end}
}

func drainAlerts(pool *WorkerPool) []ExpiryAlert {
	var alerts []ExpiryAlert
	for {
		select {
		case a := <-pool.Jobs():
			alerts = append(alerts, a)
		default:
			return alerts
		}
	}
}

func TestSweepOnceDispatchesExpiringAndJustExpired(t *testing.T) {
	now := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)

	stub := &stubStore{clients: map[string][]model.Client{
		"centro": {
			clientEnding("active", now.AddDate(0, 0, 30)),       // silent
			clientEnding("expiring", now.AddDate(0, 0, 3)),      // alert
			clientEnding("last-day", now),                       // alert
			clientEnding("just-expired", now.AddDate(0, 0, -1)), // alert
			clientEnding("long-gone", now.AddDate(0, 0, -20)),   // silent
			{Name: "no-membership"},                             // silent
		},
		"norte": {
			clientEnding("norte-expiring", now.AddDate(0, 0, 7)), // alert
		},
	}}

	// Pool large enough to buffer every alert without running workers.
	pool := NewWorkerPool(16, nil, &webpush.Options{})
	n := NewNotifier(sweepConfig(), stub, pool)
	n.now = func() time.Time { return now }

	n.SweepOnce(context.Background())

	alerts := drainAlerts(pool)
	require.Len(t, alerts, 4)

	byName := make(map[string]ExpiryAlert, len(alerts))
	for _, a := range alerts {
		byName[a.ClientName] = a
	}

	assert.Equal(t, 3, byName["expiring"].DaysLeft)
	assert.Equal(t, "centro", byName["expiring"].BranchID)
	assert.Equal(t, 0, byName["last-day"].DaysLeft)
	assert.Equal(t, -1, byName["just-expired"].DaysLeft)
	assert.Equal(t, "norte", byName["norte-expiring"].BranchID)
}

func TestSweepOnceSkipsBranchOnFetchFailure(t *testing.T) {
	stub := &stubStore{err: assert.AnError}
	pool := NewWorkerPool(4, nil, &webpush.Options{})
	n := NewNotifier(sweepConfig(), stub, pool)

	n.SweepOnce(context.Background())

	assert.Empty(t, drainAlerts(pool))
}
