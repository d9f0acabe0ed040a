package websocket

import "time"

type MessageType string

// TypeNotesInvalidated tells a client its cached notes listing is stale and
// must be re-fetched. The server pushes it after every successful mutation.
const TypeNotesInvalidated MessageType = "notes_invalidated"

type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewMessage(msgType MessageType) *Message {
	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
	}
}
