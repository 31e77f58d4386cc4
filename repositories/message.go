//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"digest-lab/domain"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreStreamMessage(message domain.StreamMessage) error
	StreamMessagesSince(streamID int, since time.Time) ([]domain.StreamMessage, error)
	StorePrivateMessage(message domain.PrivateMessage) error
	PrivateMessagesSince(userID string, since time.Time) ([]domain.PrivateMessage, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

type streamMessageRecord struct {
	ID          string `json:"id"`
	StreamID    int    `json:"stream_id"`
	Topic       string `json:"topic"`
	SenderID    string `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	SenderIsBot bool   `json:"sender_is_bot"`
	Content     string `json:"content"`
	At          int64  `json:"at"`
}

type privateMessageRecord struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipient_id"`
	SenderID    string `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	Content     string `json:"content"`
	At          int64  `json:"at"`
}

// StoreStreamMessage persists a stream message in BadgerDB.
// The key is formatted as "msg:{stream_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func (m MessageRepository) StoreStreamMessage(message domain.StreamMessage) error {
	key := fmt.Sprintf("msg:%d:%019d:%s",
		message.StreamID,
		message.At.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(fromStreamMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// StreamMessagesSince returns messages of one stream at or after the cutoff,
// oldest first. Thanks to the padded timestamp in the key, the forward scan
// starts exactly at the window boundary and never touches older entries.
func (m MessageRepository) StreamMessagesSince(streamID int, since time.Time) ([]domain.StreamMessage, error) {
	var messages []domain.StreamMessage
	prefix := []byte(fmt.Sprintf("msg:%d:", streamID))
	seekKey := []byte(fmt.Sprintf("msg:%d:%019d", streamID, since.UnixNano()))

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record streamMessageRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				message, err := toStreamMessage(record)
				if err != nil {
					return err
				}
				messages = append(messages, message)
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
	return messages, nil
}

// StorePrivateMessage persists a direct message under the recipient's keyspace,
// "pm:{recipient_id}:{timestamp_padded}:{uuid}", so the unread-PM gather is a
// single prefix scan per user.
func (m MessageRepository) StorePrivateMessage(message domain.PrivateMessage) error {
	key := fmt.Sprintf("pm:%s:%019d:%s",
		message.RecipientID,
		message.At.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(fromPrivateMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// PrivateMessagesSince returns direct messages received at or after the cutoff,
// oldest first.
func (m MessageRepository) PrivateMessagesSince(userID string, since time.Time) ([]domain.PrivateMessage, error) {
	var messages []domain.PrivateMessage
	prefix := []byte(fmt.Sprintf("pm:%s:", userID))
	seekKey := []byte(fmt.Sprintf("pm:%s:%019d", userID, since.UnixNano()))

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record privateMessageRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				message, err := toPrivateMessage(record)
				if err != nil {
					return err
				}
				messages = append(messages, message)
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
	return messages, nil
}

func fromStreamMessage(message domain.StreamMessage) streamMessageRecord {
	return streamMessageRecord{
		ID:          message.ID.String(),
		StreamID:    message.StreamID,
		Topic:       message.Topic,
		SenderID:    message.SenderID,
		SenderName:  message.SenderName,
		SenderIsBot: message.SenderIsBot,
		Content:     message.Content,
		At:          message.At.UnixNano(),
	}
}

func toStreamMessage(record streamMessageRecord) (domain.StreamMessage, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.StreamMessage{}, err
	}
	return domain.StreamMessage{
		ID:          parsedID,
		StreamID:    record.StreamID,
		Topic:       record.Topic,
		SenderID:    record.SenderID,
		SenderName:  record.SenderName,
		SenderIsBot: record.SenderIsBot,
		Content:     record.Content,
		At:          time.Unix(0, record.At).UTC(),
	}, nil
}

func fromPrivateMessage(message domain.PrivateMessage) privateMessageRecord {
	return privateMessageRecord{
		ID:          message.ID.String(),
		RecipientID: message.RecipientID,
		SenderID:    message.SenderID,
		SenderName:  message.SenderName,
		Content:     message.Content,
		At:          message.At.UnixNano(),
	}
}

func toPrivateMessage(record privateMessageRecord) (domain.PrivateMessage, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.PrivateMessage{}, err
	}
	return domain.PrivateMessage{
		ID:          parsedID,
		RecipientID: record.RecipientID,
		SenderID:    record.SenderID,
		SenderName:  record.SenderName,
		Content:     record.Content,
		At:          time.Unix(0, record.At).UTC(),
	}, nil
}
