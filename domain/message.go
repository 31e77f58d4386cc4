// Package domain contains core concepts of the digest pipeline.
// Messages are immutable and carry everything the gatherers need,
// so ranking never goes back to the store for sender metadata.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamMessage is a message posted to a stream under a topic.
type StreamMessage struct {
	ID          uuid.UUID // unique identifier
	StreamID    int
	Topic       string
	SenderID    string
	SenderName  string
	SenderIsBot bool
	Content     string
	At          time.Time
}

// PrivateMessage is a direct message between two users.
type PrivateMessage struct {
	ID          uuid.UUID
	RecipientID string
	SenderID    string
	SenderName  string
	Content     string
	At          time.Time
}
