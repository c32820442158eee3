// Package worker delivers queued alert notifications out of band, so the
// API process never blocks a fetch on delivery.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"mindmoney/internal/core"
	"mindmoney/internal/notify"
)

// Notifier processes alert notification messages from the queue. Delivery
// today is the structured log stream; the handler is where push or e-mail
// channels would plug in.
type Notifier struct {
	mu         sync.Mutex
	delivered  int
	bySeverity map[core.Severity]int
}

func NewNotifier() *Notifier {
	return &Notifier{bySeverity: make(map[core.Severity]int)}
}

// HandleNotification processes a single alert notification message.
// Returning an error requeues the message.
func (n *Notifier) HandleNotification(ctx context.Context, msg *notify.Message) error {
	if msg.UserID < 1 {
		return fmt.Errorf("notification without user id")
	}
	if msg.Body == "" {
		return fmt.Errorf("notification without message body")
	}

	slog.InfoContext(ctx, "Delivering alert notification",
		"user_id", msg.UserID,
		"severity", string(msg.Severity),
		"category", msg.Category,
		"message", msg.Body,
		"queued_at", msg.Timestamp)

	n.mu.Lock()
	n.delivered++
	n.bySeverity[msg.Severity]++
	n.mu.Unlock()

	return nil
}

// Delivered reports how many notifications this worker has handled.
func (n *Notifier) Delivered() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.delivered
}

// DeliveredBySeverity reports per-severity delivery counts.
func (n *Notifier) DeliveredBySeverity() map[core.Severity]int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[core.Severity]int, len(n.bySeverity))
	for k, v := range n.bySeverity {
		out[k] = v
	}
	return out
}
