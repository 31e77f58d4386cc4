package repositories

import (
	"digest-lab/domain"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SetupTestDB initializes a temporary Badger instance for testing
func SetupTestDB(t *testing.T) (*badger.DB, func()) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)

	return db, func() {
		db.Close()
	}
}

func TestMessageRepository_StreamWindow(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default())
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	before := domain.StreamMessage{
		ID: uuid.New(), StreamID: 1, Topic: "old", SenderID: "u1",
		SenderName: "U1", Content: "before the window", At: cutoff.Add(-time.Hour),
	}
	boundary := domain.StreamMessage{
		ID: uuid.New(), StreamID: 1, Topic: "boundary", SenderID: "u2",
		SenderName: "U2", Content: "exactly at the cutoff", At: cutoff,
	}
	after := domain.StreamMessage{
		ID: uuid.New(), StreamID: 1, Topic: "new", SenderID: "u3",
		SenderName: "U3", Content: "inside the window", At: cutoff.Add(time.Hour),
	}
	otherStream := domain.StreamMessage{
		ID: uuid.New(), StreamID: 2, Topic: "new", SenderID: "u4",
		SenderName: "U4", Content: "wrong stream", At: cutoff.Add(time.Hour),
	}

	for _, m := range []domain.StreamMessage{after, before, boundary, otherStream} {
		req.NoError(repo.StoreStreamMessage(m))
	}

	// When: scanning stream 1 since the cutoff
	window, err := repo.StreamMessagesSince(1, cutoff)

	// Then: the boundary message is included, older and foreign ones are not
	req.NoError(err)
	req.Len(window, 2)
	req.Equal(boundary.ID, window[0].ID, "cutoff is inclusive")
	req.Equal(after.ID, window[1].ID)
}

func TestMessageRepository_StreamWindow_ChronologicalOrder(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default())
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	// Inserted newest first on purpose; the key layout must restore order.
	for i := 4; i >= 0; i-- {
		req.NoError(repo.StoreStreamMessage(domain.StreamMessage{
			ID: uuid.New(), StreamID: 7, Topic: "t", SenderID: "u",
			SenderName: "U", Content: "x", At: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	window, err := repo.StreamMessagesSince(7, base)
	req.NoError(err)
	req.Len(window, 5)
	for i := 1; i < len(window); i++ {
		req.True(window[i-1].At.Before(window[i].At), "window must be oldest first")
	}
}

func TestMessageRepository_PrivateWindow(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default())
	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mine := domain.PrivateMessage{
		ID: uuid.New(), RecipientID: "alice", SenderID: "bob",
		SenderName: "Bob", Content: "hey", At: cutoff.Add(time.Minute),
	}
	stale := domain.PrivateMessage{
		ID: uuid.New(), RecipientID: "alice", SenderID: "bob",
		SenderName: "Bob", Content: "old news", At: cutoff.Add(-time.Minute),
	}
	someoneElses := domain.PrivateMessage{
		ID: uuid.New(), RecipientID: "carol", SenderID: "bob",
		SenderName: "Bob", Content: "not yours", At: cutoff.Add(time.Minute),
	}

	for _, m := range []domain.PrivateMessage{mine, stale, someoneElses} {
		req.NoError(repo.StorePrivateMessage(m))
	}

	window, err := repo.PrivateMessagesSince("alice", cutoff)
	req.NoError(err)
	req.Len(window, 1)
	req.Equal(mine.ID, window[0].ID)
	req.Equal("Bob", window[0].SenderName)
}

func TestMessageRepository_RoundTrip(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default())
	at := time.Date(2026, 2, 1, 12, 30, 45, 123456789, time.UTC)

	original := domain.StreamMessage{
		ID: uuid.New(), StreamID: 3, Topic: "précision", SenderID: "u1",
		SenderName: "Üser", SenderIsBot: true, Content: "UTF-8 content été", At: at,
	}
	req.NoError(repo.StoreStreamMessage(original))

	window, err := repo.StreamMessagesSince(3, at)
	req.NoError(err)
	req.Len(window, 1)
	req.Equal(original, window[0])
}
