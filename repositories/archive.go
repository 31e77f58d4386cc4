//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=../mocks/mock_archive_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/index"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IDigestArchiveRepository interface {
	Store(record DigestRecord) error
	Flush() error
	SearchPaginated(ctx context.Context, query string, page int) ([]DigestRecord, uint64, error)
	ListByUser(userID string, limit int) ([]DigestRecord, error)
}

// DigestRecord is one archived digest email.
type DigestRecord struct {
	ID      uuid.UUID `json:"id"`
	UserID  string    `json:"user_id"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// DigestArchiveRepository keeps the source of truth in BadgerDB and a
// full-text index in Bluge. Index writes are batched; Flush commits the
// current batch, and Store self-flushes every flushEvery documents.
type DigestArchiveRepository struct {
	db         *badger.DB
	writer     *bluge.Writer
	log        *slog.Logger
	pageSize   int
	flushEvery int

	mu      sync.Mutex
	batch   *index.Batch
	batched int
}

const defaultArchivePageSize = 20

func NewDigestArchiveRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger, pageSize *int, flushEvery int) *DigestArchiveRepository {
	size := defaultArchivePageSize
	if pageSize != nil {
		size = *pageSize
	}
	if flushEvery <= 0 {
		flushEvery = 1
	}
	return &DigestArchiveRepository{
		db:         db,
		writer:     writer,
		log:        log,
		pageSize:   size,
		flushEvery: flushEvery,
		batch:      bluge.NewBatch(),
	}
}

func archiveKey(record DigestRecord) string {
	return fmt.Sprintf("archive:%s:%019d:%s", record.UserID, record.SentAt.UnixNano(), record.ID)
}

// Store persists the record and queues it for indexing. The Bluge document id
// is the Badger key, so search hits resolve back to full records.
func (a *DigestArchiveRepository) Store(record DigestRecord) error {
	key := archiveKey(record)
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(key).
		AddField(bluge.NewKeywordField("user_id", record.UserID)).
		AddField(bluge.NewTextField("subject", record.Subject)).
		AddField(bluge.NewTextField("body", record.Body)).
		AddField(bluge.NewDateTimeField("sent_at", record.SentAt))

	a.mu.Lock()
	defer a.mu.Unlock()
	a.batch.Update(doc.ID(), doc)
	a.batched++
	if a.batched >= a.flushEvery {
		return a.flushLocked()
	}
	return nil
}

// Flush commits any pending index writes.
func (a *DigestArchiveRepository) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked()
}

func (a *DigestArchiveRepository) flushLocked() error {
	if a.batched == 0 {
		return nil
	}
	if err := a.writer.Batch(a.batch); err != nil {
		return fmt.Errorf("bluge batch failed: %w", err)
	}
	a.batch.Reset()
	a.batched = 0
	return nil
}

// SearchPaginated runs a full-text match over subject and body and returns the
// page of matching records plus the total hit count.
func (a *DigestArchiveRepository) SearchPaginated(ctx context.Context, query string, page int) ([]DigestRecord, uint64, error) {
	reader, err := a.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("bluge reader failed: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			a.log.Warn("failed to close bluge reader", "err", err)
		}
	}()

	matcher := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(query).SetField("subject")).
		AddShould(bluge.NewMatchQuery(query).SetField("body"))

	request := bluge.NewTopNSearch(a.pageSize, matcher).
		SetFrom(page * a.pageSize).
		WithStandardAggregations()

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("bluge search failed: %w", err)
	}

	var keys []string
	match, err := iterator.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				keys = append(keys, string(value))
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, 0, err
	}

	records := make([]DigestRecord, 0, len(keys))
	err = a.db.View(func(txn *badger.Txn) error {
		for _, key := range keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				// Index and store can briefly disagree; skip the orphan.
				a.log.Warn("archive hit without record", "key", key)
				continue
			}
			err = item.Value(func(val []byte) error {
				var record DigestRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return records, iterator.Aggregations().Count(), nil
}

// ListByUser returns the most recent archived digests of one user.
func (a *DigestArchiveRepository) ListByUser(userID string, limit int) ([]DigestRecord, error) {
	var records []DigestRecord
	prefix := []byte(fmt.Sprintf("archive:%s:", userID))

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the newest entry of this user, then walk backwards.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record DigestRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
