package worker

import (
	"context"
	"testing"
	"time"

	"mindmoney/internal/core"
	"mindmoney/internal/notify"
)

func TestHandleNotification(t *testing.T) {
	n := NewNotifier()
	msg := &notify.Message{
		UserID:    3,
		Severity:  core.SeverityWarning,
		Category:  "Alimentação",
		Body:      "Você já usou 85% do limite de Alimentação (R$ 425.00 de R$ 500.00).",
		Timestamp: time.Now(),
	}

	if err := n.HandleNotification(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := n.Delivered(); got != 1 {
		t.Errorf("Delivered() = %d, want 1", got)
	}
	if got := n.DeliveredBySeverity()[core.SeverityWarning]; got != 1 {
		t.Errorf("warning deliveries = %d, want 1", got)
	}
}

func TestHandleNotificationRejectsInvalid(t *testing.T) {
	n := NewNotifier()

	cases := []struct {
		name string
		msg  *notify.Message
	}{
		{"missing user", &notify.Message{Body: "algo"}},
		{"missing body", &notify.Message{UserID: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := n.HandleNotification(context.Background(), tc.msg); err == nil {
				t.Error("expected error")
			}
		})
	}

	if got := n.Delivered(); got != 0 {
		t.Errorf("Delivered() = %d, want 0", got)
	}
}
