package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/membership"
	"gym-admin-backend/internal/store"
)

// Notifier periodically sweeps every branch roster and dispatches expiry
// alerts for memberships inside the expiring window or just past it.
type Notifier struct {
	cfg   *config.Config
	store store.Store
	pool  *WorkerPool
	now   func() time.Time
}

// NewNotifier creates a notifier backed by the given worker pool.
func NewNotifier(cfg *config.Config, s store.Store, pool *WorkerPool) *Notifier {
	return &Notifier{cfg: cfg, store: s, pool: pool, now: time.Now}
}

// Run sweeps once immediately and then on every notifier interval until the
// context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	n.SweepOnce(ctx)

	ticker := time.NewTicker(n.cfg.Notifier.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.SweepOnce(ctx)
		case <-ctx.Done():
			log.Info().Msg("notifier stopped")
			return
		}
	}
}

// SweepOnce classifies every configured branch's roster and dispatches one
// alert per expiring or expired membership. Fetch failures skip the branch;
// the next sweep retries naturally.
func (n *Notifier) SweepOnce(ctx context.Context) {
	now := n.now()

	for _, branch := range n.cfg.Branches {
		clients, err := n.store.ListClients(ctx, branch.ID)
		if err != nil {
			log.Error().Err(err).Str("branch", branch.ID).Msg("expiry sweep fetch failed")
			continue
		}

		dispatched := 0
		for _, client := range clients {
			status := membership.Evaluate(client.MembershipEnd, now)
			// Alert inside the expiring window and on the first day after
			// expiry. Older expirations stay silent so long-gone clients do
			// not re-alert on every sweep.
			if status.Code != membership.StatusExpiring &&
				!(status.Code == membership.StatusExpired && status.DaysLeft == -1) {
				continue
			}
			n.pool.Dispatch(ExpiryAlert{
				BranchID:   branch.ID,
				ClientName: client.Name,
				DaysLeft:   status.DaysLeft,
			})
			dispatched++
		}

		if dispatched > 0 {
			log.Info().Str("branch", branch.ID).Int("alerts", dispatched).Msg("expiry alerts dispatched")
		}
	}
}
