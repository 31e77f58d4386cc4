//go:generate go run go.uber.org/mock/mockgen -source=stream.go -destination=../mocks/mock_stream_repository.go -package=mocks
package repositories

import (
	"digest-lab/domain"
	"digest-lab/errors"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IStreamRepository interface {
	CreateStream(stream domain.Stream) error
	GetStream(id int) (domain.Stream, error)
	ListStreams() ([]domain.Stream, error)
	StreamsCreatedSince(since time.Time) ([]domain.Stream, error)
}

type StreamRepository struct {
	db *badger.DB
}

func NewStreamRepository(db *badger.DB) IStreamRepository {
	return &StreamRepository{db: db}
}

type streamRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InviteOnly  bool   `json:"invite_only"`
	CreatedAt   int64  `json:"created_at"`
}

func streamKey(id int) []byte {
	// Padded so integer order matches lexicographical order.
	return []byte(fmt.Sprintf("stream:%010d", id))
}

func (s StreamRepository) CreateStream(stream domain.Stream) error {
	if stream.CreatedAt.IsZero() {
		stream.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(fromStream(stream))
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(streamKey(stream.ID), data)
	})
}

func (s StreamRepository) GetStream(id int) (domain.Stream, error) {
	var record streamRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(streamKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Stream{}, errors.ErrStreamNotFound
	}
	if err != nil {
		return domain.Stream{}, err
	}
	return toStream(record), nil
}

func (s StreamRepository) ListStreams() ([]domain.Stream, error) {
	var streams []domain.Stream
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte("stream:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record streamRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				streams = append(streams, toStream(record))
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
	return streams, nil
}

// StreamsCreatedSince keeps streams created at or after the cutoff.
// Streams are keyed by id, not creation time, so this is a filtered scan;
// stream cardinality stays small enough that an index is not worth it.
func (s StreamRepository) StreamsCreatedSince(since time.Time) ([]domain.Stream, error) {
	streams, err := s.ListStreams()
	if err != nil {
		return nil, err
	}
	var recent []domain.Stream
	for _, stream := range streams {
		if !stream.CreatedAt.Before(since) {
			recent = append(recent, stream)
		}
	}
	return recent, nil
}

func fromStream(stream domain.Stream) streamRecord {
	return streamRecord{
		ID:          stream.ID,
		Name:        stream.Name,
		Description: stream.Description,
		InviteOnly:  stream.InviteOnly,
		CreatedAt:   stream.CreatedAt.UnixNano(),
	}
}

func toStream(record streamRecord) domain.Stream {
	return domain.Stream{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		InviteOnly:  record.InviteOnly,
		CreatedAt:   time.Unix(0, record.CreatedAt).UTC(),
	}
}
