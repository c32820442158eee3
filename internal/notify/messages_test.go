package notify

import (
	"testing"

	"mindmoney/internal/core"
)

func TestMessageRoundTrip(t *testing.T) {
	n := core.Notification{
		Severity: core.SeverityDanger,
		Category: "Lazer",
		Message:  "Limite de Lazer estourado! Gasto: R$ 150.00 de R$ 100.00 (excedeu R$ 50.00).",
	}

	msg := NewMessage(42, n)
	if msg.Timestamp.IsZero() {
		t.Error("message should carry a timestamp")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := MessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.UserID != 42 || got.Severity != core.SeverityDanger || got.Category != "Lazer" || got.Body != n.Message {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := MessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
