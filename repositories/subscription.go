//go:generate go run go.uber.org/mock/mockgen -source=subscription.go -destination=../mocks/mock_subscription_repository.go -package=mocks
package repositories

import (
	"digest-lab/domain"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type ISubscriptionRepository interface {
	Upsert(sub domain.Subscription) error
	HomeViewStreamIDs(userID string) ([]int, error)
}

type SubscriptionRepository struct {
	db *badger.DB
}

func NewSubscriptionRepository(db *badger.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type subscriptionRecord struct {
	UserID     string `json:"user_id"`
	StreamID   int    `json:"stream_id"`
	InHomeView bool   `json:"in_home_view"`
	Active     bool   `json:"active"`
}

func subscriptionKey(userID string, streamID int) []byte {
	return []byte(fmt.Sprintf("sub:%s:%010d", userID, streamID))
}

func (s SubscriptionRepository) Upsert(sub domain.Subscription) error {
	data, err := json.Marshal(subscriptionRecord(sub))
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(subscriptionKey(sub.UserID, sub.StreamID), data)
	})
}

// HomeViewStreamIDs returns the active home-view subscriptions of one user.
// This is the stream set feeding hot-conversation gathering.
func (s SubscriptionRepository) HomeViewStreamIDs(userID string) ([]int, error) {
	var ids []int
	prefix := []byte(fmt.Sprintf("sub:%s:", userID))

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record subscriptionRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				if !record.Active || !record.InHomeView {
					return nil
				}
				ids = append(ids, record.StreamID)
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
	return ids, nil
}
