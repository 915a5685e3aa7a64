// Package notify hands ready orders to an external delivery channel and
// records the hand-off exactly once.
//
// Delivery is at-least-once: a send that fails or times out leaves the order
// unmarked, so the next cycle tries again. Marking is at-most-once: the
// notified flag is written with a conditional update, so overlapping pollers
// never both commit it.
package notify

import (
	"context"
	"errors"
	"iter"
	"log"
	"time"

	"github.com/MikeMC777/pedidos-restaurante/internal/apperr"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
)

type Tracker struct {
	repo      order.Repository
	deliverer Deliverer
	timeout   time.Duration
	now       func() time.Time
}

func NewTracker(repo order.Repository, d Deliverer, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Tracker{repo: repo, deliverer: d, timeout: timeout, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// PollPending yields one cycle's worth of orders that are ready and not yet
// notified. It has no side effects and may be called at any time.
func (t *Tracker) PollPending(ctx context.Context) iter.Seq2[order.Order, error] {
	return t.repo.PendingNotification(ctx)
}

// MarkNotified records the hand-off. When the order was already marked it
// returns the stored order with apperr.ErrAlreadyNotified, which callers
// treat as success.
func (t *Tracker) MarkNotified(ctx context.Context, id string) (*order.Order, error) {
	return t.repo.MarkNotified(ctx, id, t.now().UTC())
}

func (t *Tracker) MarkNotifiedByCode(ctx context.Context, code string) (*order.Order, error) {
	o, err := t.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return t.MarkNotified(ctx, o.ID)
}

type CycleStats struct {
	Delivered       int `json:"delivered"`
	Skipped         int `json:"skipped"`
	Failed          int `json:"failed"`
	AlreadyNotified int `json:"already_notified"`
}

// RunCycle delivers every pending order once. Delivery failures are counted
// and logged, never returned; only store failures abort the cycle.
func (t *Tracker) RunCycle(ctx context.Context) (CycleStats, error) {
	var stats CycleStats
	for o, err := range t.PollPending(ctx) {
		if err != nil {
			return stats, err
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if o.Notification.Channel == order.ChannelNone {
			if err := t.mark(ctx, o, &stats); err != nil {
				return stats, err
			}
			stats.Skipped++
			continue
		}

		if err := t.deliver(ctx, o); err != nil {
			stats.Failed++
			log.Printf("[notify] delivery of %s via %s failed, will retry: %v", o.Code, o.Notification.Channel, err)
			continue
		}
		if err := t.mark(ctx, o, &stats); err != nil {
			return stats, err
		}
		stats.Delivered++
	}
	return stats, nil
}

func (t *Tracker) deliver(ctx context.Context, o order.Order) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.deliverer.Deliver(ctx, newNotification(o))
}

func (t *Tracker) mark(ctx context.Context, o order.Order, stats *CycleStats) error {
	_, err := t.MarkNotified(ctx, o.ID)
	if errors.Is(err, apperr.ErrAlreadyNotified) {
		stats.AlreadyNotified++
		log.Printf("[notify] %s already marked by another poller", o.Code)
		return nil
	}
	return err
}

// Run polls every interval until ctx is done.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[notify] tracker started, interval=%s timeout=%s", interval, t.timeout)
	for {
		stats, err := t.RunCycle(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Printf("[notify] poll cycle failed: %v", err)
		case stats != (CycleStats{}):
			log.Printf("[notify] cycle delivered=%d skipped=%d failed=%d already=%d",
				stats.Delivered, stats.Skipped, stats.Failed, stats.AlreadyNotified)
		}

		select {
		case <-ctx.Done():
			log.Printf("[notify] tracker stopped")
			return nil
		case <-ticker.C:
		}
	}
}
