package domain

import "time"

// DigestEvent is the unit of work handed to the digest workers.
// Cutoff is the lower bound of the activity window.
type DigestEvent struct {
	UserID string    `json:"user_id"`
	Cutoff time.Time `json:"cutoff"`
}
