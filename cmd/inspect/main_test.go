package main

import (
	"digest-lab/domain"
	"digest-lab/repositories"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// Rows must decode the payloads exactly as the repositories store them, so
// the table shows typed rows instead of RAW fallbacks.
func TestDescribe_DigestQueueEntries(t *testing.T) {
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	defer db.Close()

	queue := repositories.NewDigestQueueRepository(db, slog.Default())
	cutoff := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)

	pending := domain.DigestEvent{UserID: "alice", Cutoff: cutoff}
	sent := domain.DigestEvent{UserID: "bob", Cutoff: cutoff}
	req.NoError(queue.Enqueue(pending))
	req.NoError(queue.Enqueue(sent))
	req.NoError(queue.MarkSent(sent))

	rows := map[string][]string{}
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte("digest:")); it.ValidForPrefix([]byte("digest:")); it.Next() {
			key := string(it.Item().Key())
			err := it.Item().Value(func(v []byte) error {
				row := describe(key, v)
				rows[row[1]] = row
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	req.NoError(err)

	pendingRow, ok := rows["PENDING"]
	req.True(ok, "pending entry must not fall back to RAW")
	req.Equal("alice", pendingRow[2])
	req.Equal("2026-03-01 04:00", pendingRow[3])

	sentRow, ok := rows["SENT"]
	req.True(ok, "sent marker must not fall back to RAW")
	req.Equal("bob", sentRow[2])
	req.Contains(sentRow[4], "sent ")
}

func TestDescribe_UnknownPayloadFallsBackToRaw(t *testing.T) {
	row := describe("digest:pending:000:x", []byte("not json"))
	require.Equal(t, "RAW", row[1])
}
