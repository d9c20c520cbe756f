package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gym-admin-backend/internal/model"
)

// ExpiryAlert is a unit of work for the pool: one client whose membership
// needs attention, fanned out to every subscription of their branch.
type ExpiryAlert struct {
	BranchID   string
	ClientName string
	// DaysLeft follows the evaluator's convention: negative means the
	// membership already expired.
	DaysLeft int
}

// Message renders the push payload for the alert.
func (a ExpiryAlert) Message() string {
	switch {
	case a.DaysLeft < 0:
		return fmt.Sprintf("La membresía de %s ha vencido", a.ClientName)
	case a.DaysLeft == 0:
		return fmt.Sprintf("La membresía de %s vence hoy", a.ClientName)
	case a.DaysLeft == 1:
		return fmt.Sprintf("La membresía de %s vence mañana", a.ClientName)
	default:
		return fmt.Sprintf("La membresía de %s vence en %d días", a.ClientName, a.DaysLeft)
	}
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending expiry notifications.
type WorkerPool struct {
	size    int
	jobs    chan ExpiryAlert
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan ExpiryAlert, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Debug().Int("worker", id).Msg("notification worker started")
	for {
		select {
		case alert := <-wp.jobs:
			wp.sendAlert(ctx, alert)
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("notification worker shutting down")
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(alert ExpiryAlert) {
	wp.jobs <- alert
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan ExpiryAlert {
	return wp.jobs
}

// sendAlert fetches the branch's subscriptions and pushes the alert to each.
func (wp *WorkerPool) sendAlert(ctx context.Context, alert ExpiryAlert) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("branch_id = ?", alert.BranchID).
		Find(&subscriptions).Error
	if err != nil {
		log.Error().Err(err).Str("branch", alert.BranchID).Msg("failed to fetch subscriptions")
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	payload := []byte(alert.Message())
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to send notification")
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Info().Str("endpoint", sub.Endpoint).Msg("subscription expired, deleting")
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Error().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to delete expired subscription")
		}
	}
}
