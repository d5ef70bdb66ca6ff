package amqp

import (
	"encoding/json"
	"time"
)

// Message kinds routed through the sync queue.
const (
	KindSync   = "sync"
	KindDelete = "delete"
)

// Message is the compact envelope for report-sync work. It carries only the
// transaction id; the worker fetches the full row from the ledger.
type Message struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncMessage(id string) *Message {
	return &Message{Kind: KindSync, ID: id, Timestamp: time.Now()}
}

func NewDeleteMessage(id string) *Message {
	return &Message{Kind: KindDelete, ID: id, Timestamp: time.Now()}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
