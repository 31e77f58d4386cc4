//go:generate go run go.uber.org/mock/mockgen -source=queue.go -destination=../mocks/mock_queue_repository.go -package=mocks
package repositories

import (
	"digest-lab/domain"
	"digest-lab/errors"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IDigestQueueRepository interface {
	Enqueue(event domain.DigestEvent) error
	NextBatch(limit int) ([]domain.DigestEvent, error)
	MarkSent(event domain.DigestEvent) error
	Discard(event domain.DigestEvent) error
	CountPending() (int, error)
}

// DigestQueueRepository persists digest events in BadgerDB so a crash between
// the sweep and the send loses nothing: pending events are replayed at boot.
type DigestQueueRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDigestQueueRepository(db *badger.DB, log *slog.Logger) *DigestQueueRepository {
	return &DigestQueueRepository{db: db, log: log}
}

type digestEventRecord struct {
	UserID string `json:"user_id"`
	Cutoff int64  `json:"cutoff"`
	SentAt int64  `json:"sent_at,omitempty"`
}

func pendingKey(event domain.DigestEvent) []byte {
	// Cutoff first so batches come out oldest-window first.
	return []byte(fmt.Sprintf("digest:pending:%019d:%s", event.Cutoff.UnixNano(), event.UserID))
}

func sentKey(event domain.DigestEvent) []byte {
	// One sent marker per user; a newer digest overwrites the previous marker.
	return []byte("digest:sent:" + event.UserID)
}

// Enqueue persists a new digest event with a cutoff-ordered key.
func (q DigestQueueRepository) Enqueue(event domain.DigestEvent) error {
	data, err := json.Marshal(digestEventRecord{
		UserID: event.UserID,
		Cutoff: event.Cutoff.UnixNano(),
	})
	if err != nil {
		return err
	}
	return q.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pendingKey(event), data)
	})
}

// NextBatch retrieves up to limit pending events, ordered by cutoff.
func (q DigestQueueRepository) NextBatch(limit int) ([]domain.DigestEvent, error) {
	var events []domain.DigestEvent
	prefix := []byte("digest:pending:")

	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.PrefetchSize = limit

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record digestEventRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return fmt.Errorf("failed to unmarshal digest event: %w", err)
				}
				events = append(events, domain.DigestEvent{
					UserID: record.UserID,
					Cutoff: time.Unix(0, record.Cutoff).UTC(),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during batch fetch: %w", err)
	}

	return events, nil
}

// MarkSent moves an event from pending to sent by swapping its key atomically.
func (q DigestQueueRepository) MarkSent(event domain.DigestEvent) error {
	data, err := json.Marshal(digestEventRecord{
		UserID: event.UserID,
		Cutoff: event.Cutoff.UnixNano(),
		SentAt: time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal digest event: %w", err)
	}

	return q.db.Update(func(txn *badger.Txn) error {
		key := pendingKey(event)
		if _, err := txn.Get(key); goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrEventNotPending
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Set(sentKey(event), data)
	})
}

// Discard drops a pending event without a sent marker. Used when the traffic
// gate decides the user gets no email this cycle.
func (q DigestQueueRepository) Discard(event domain.DigestEvent) error {
	return q.db.Update(func(txn *badger.Txn) error {
		key := pendingKey(event)
		if _, err := txn.Get(key); goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrEventNotPending
		}
		return txn.Delete(key)
	})
}

func (q DigestQueueRepository) CountPending() (int, error) {
	count := 0
	prefix := []byte("digest:pending:")
	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // Keys are enough for counting
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
