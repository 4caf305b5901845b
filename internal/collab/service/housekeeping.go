package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/slogx"
)

// Housekeeping runs the periodic hygiene sweep. Correctness never depends
// on it: expiry is enforced at read time and the sweep only keeps status
// columns and the notifications table tidy.
type Housekeeping struct {
	Store    store.Store
	Interval time.Duration

	// NotificationTTL is how long read notifications are kept.
	NotificationTTL time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

const (
	defaultSweepInterval   = time.Hour
	defaultNotificationTTL = 90 * 24 * time.Hour
)

// Start launches the sweep loop in a goroutine. One initial sweep runs
// immediately.
func (h *Housekeeping) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})

	interval := h.Interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	go func() {
		defer close(h.done)

		h.sweep(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.sweep(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight sweep to finish.
func (h *Housekeeping) Stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	<-h.done
}

func (h *Housekeeping) sweep(ctx context.Context) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	if err := h.Store.Invitations().MarkExpiredInvitations(ctx, now); err != nil {
		log.Error("housekeeping: expire invitations failed", slog.Any("error", err))
	}

	ttl := h.NotificationTTL
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	if err := h.Store.Notifications().DeleteReadNotificationsBefore(ctx, now.Add(-ttl)); err != nil {
		log.Error("housekeeping: prune notifications failed", slog.Any("error", err))
	}

	log.Debug("housekeeping sweep completed")
}
