package notify

import (
	"encoding/json"
	"time"

	"mindmoney/internal/core"
)

// Message is one alert notification on the wire. It is self-contained:
// the worker delivers it without reading the database, because the alert
// state that produced it is recomputed on every fetch and may already have
// changed.
type Message struct {
	UserID    int64         `json:"user_id"`
	Severity  core.Severity `json:"severity"`
	Category  string        `json:"category"`
	Body      string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewMessage wraps a core notification for one user.
func NewMessage(userID int64, n core.Notification) *Message {
	return &Message{
		UserID:    userID,
		Severity:  n.Severity,
		Category:  n.Category,
		Body:      n.Message,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON creates a message from JSON bytes
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
