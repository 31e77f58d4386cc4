// Package event defines telemetry events flowing on the side channel.
// Best effort only: events may be dropped under load and must never
// carry state the pipeline depends on.
package event

import "time"

type Type string

const (
	ChannelCapacityType Type = "channel_capacity"
	DigestQueuedType    Type = "digest_queued"
	DigestSentType      Type = "digest_sent"
	DigestSkippedType   Type = "digest_skipped"
	DigestFailedType    Type = "digest_failed"
)

type Event struct {
	Type    Type
	Payload any
}

type Handler interface {
	Handle(e Event)
}

// ChannelCapacity reports the fill level of an internal channel.
type ChannelCapacity struct {
	ChannelName string
	Length      int
	Capacity    int
}

// DigestOutcome reports the terminal state of one digest event.
type DigestOutcome struct {
	UserID string
	Cutoff time.Time
	Reason string
}
