package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordCreated announces a record added to one of the collections.
type RecordCreated struct {
	Collection string          `json:"collection"`
	RecordID   string          `json:"record_id"`
	UserID     string          `json:"user_id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewRecordCreated builds a message carrying record as its data.
func NewRecordCreated(collection, recordID, userID string, record any) (*RecordCreated, error) {
	msg := &RecordCreated{
		Collection: collection,
		RecordID:   recordID,
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
	}
	if record != nil {
		data, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("events: encoding record: %w", err)
		}
		msg.Data = data
	}
	return msg, nil
}

// ToJSON converts the message to JSON bytes.
func (m *RecordCreated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordCreatedFromJSON decodes a message.
func RecordCreatedFromJSON(data []byte) (*RecordCreated, error) {
	var msg RecordCreated
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Collection == "" {
		return nil, fmt.Errorf("events: message has no collection")
	}
	return &msg, nil
}
