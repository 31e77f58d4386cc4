package domain

import "time"

type StreamID = int

// Stream is a named channel of topic-threaded conversations.
// Invite-only streams never appear in "new streams" digest sections.
type Stream struct {
	ID          int
	Name        string
	Description string
	InviteOnly  bool
	CreatedAt   time.Time
}

// Subscription binds a user to a stream.
// Only active home-view subscriptions feed hot-conversation gathering.
type Subscription struct {
	UserID     string
	StreamID   int
	InHomeView bool
	Active     bool
}
