package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg     *config.Config
	store   store.Store
	webpush *webpush.Options
	// now supplies the reference time for status classification and
	// reporting windows; tests pin it.
	now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, s store.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   s,
		webpush: webpushOptions,
		now:     time.Now,
	}
}

// branch resolves a configured branch or nil when the ID is unknown.
func (h *Handler) branch(id string) *config.Branch {
	b, ok := h.cfg.Branch(id)
	if !ok {
		return nil
	}
	return b
}
