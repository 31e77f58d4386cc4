package event

import (
	"digest-lab/errors"
	"log/slog"
	"sync"
)

// OutcomeHandler tallies terminal digest outcomes per user.
// The counters back the reporter display; they are not persisted.
type OutcomeHandler struct {
	mu      sync.Mutex
	log     *slog.Logger
	counter uint64
	perUser map[string]uint64
}

func NewOutcomeHandler(log *slog.Logger) *OutcomeHandler {
	return &OutcomeHandler{
		log:     log,
		perUser: make(map[string]uint64),
	}
}

func (h *OutcomeHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case DigestSentType, DigestSkippedType, DigestFailedType:
		payload, ok := event.Payload.(DigestOutcome)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.counter++
		h.perUser[payload.UserID]++
		if event.Type == DigestFailedType {
			h.log.Warn("digest composition failed", "user_id", payload.UserID, "reason", payload.Reason)
		}
	}
}

// Total returns the number of terminal outcomes observed so far.
func (h *OutcomeHandler) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counter
}
