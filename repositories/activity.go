//go:generate go run go.uber.org/mock/mockgen -source=activity.go -destination=../mocks/mock_activity_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IActivityRepository interface {
	TouchVisit(userID string, at time.Time) error
	LastVisit(userID string) (time.Time, error)
}

// ActivityRepository tracks the last visit per user. Digest eligibility is a
// comparison of this timestamp against the inactivity threshold.
type ActivityRepository struct {
	db *badger.DB
}

func NewActivityRepository(db *badger.DB) IActivityRepository {
	return &ActivityRepository{db: db}
}

type activityRecord struct {
	LastVisit int64 `json:"last_visit"`
}

func (a ActivityRepository) TouchVisit(userID string, at time.Time) error {
	data, err := json.Marshal(activityRecord{LastVisit: at.UnixNano()})
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("activity:"+userID), data)
	})
}

// LastVisit returns the zero time for users who never visited.
// Such users are considered inactive and therefore digest-eligible.
func (a ActivityRepository) LastVisit(userID string) (time.Time, error) {
	var record activityRecord
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("activity:" + userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, record.LastVisit).UTC(), nil
}
