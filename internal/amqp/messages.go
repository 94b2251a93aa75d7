package amqp

import (
	"encoding/json"
	"time"
)

// EventAction identifies what happened to a record.
type EventAction string

const (
	EventCreated EventAction = "created"
	EventDeleted EventAction = "deleted"
)

// ExpenseEventMessage notifies consumers that a record changed. It
// carries identifiers and the affected month, not the record body; the
// worker reads whatever it needs from the store.
type ExpenseEventMessage struct {
	Action    EventAction `json:"action"`
	RecordID  string      `json:"record_id"`
	Owner     string      `json:"owner"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewExpenseEventMessage creates an event message stamped with the
// current time.
func NewExpenseEventMessage(action EventAction, recordID, owner string, year, month int) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Action:    action,
		RecordID:  recordID,
		Owner:     owner,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventMessageFromJSON creates a message from JSON bytes.
func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
