package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestDigestArchiveRepository_StoreAndSearch(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewDigestArchiveRepository(badgerDB, blugeWriter, log, lo.ToPtr(50), 10)

	// Given: an archived digest
	record := DigestRecord{
		ID:      uuid.New(),
		UserID:  "user-1",
		Subject: "While you were away - acme",
		Body:    "<html><body>Hot conversation about the Kubernetes migration</body></html>",
		SentAt:  time.Now().UTC(),
	}

	// When: storing and flushing the index batch
	req.NoError(repo.Store(record))
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	// Then: searchable by body content
	results, total, err := repo.SearchPaginated(ctx, "kubernetes", 0)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(results, 1)
	req.Equal(record.ID, results[0].ID)
	req.Equal(record.Subject, results[0].Subject)

	// And: searchable by subject
	bySubject, _, err := repo.SearchPaginated(ctx, "away", 0)
	req.NoError(err)
	req.Len(bySubject, 1)
}

func TestDigestArchiveRepository_SearchPagination(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewDigestArchiveRepository(badgerDB, blugeWriter, log, lo.ToPtr(3), 10)

	// Given: 7 digests sharing a keyword
	for i := 0; i < 7; i++ {
		req.NoError(repo.Store(DigestRecord{
			ID:      uuid.New(),
			UserID:  fmt.Sprintf("user-%d", i),
			Subject: fmt.Sprintf("Digest %d", i),
			Body:    "weekly activity summary",
			SentAt:  time.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}
	req.NoError(repo.Flush())
	time.Sleep(50 * time.Millisecond)

	page1, total, err := repo.SearchPaginated(ctx, "activity", 0)
	req.NoError(err)
	req.Equal(uint64(7), total)
	req.Len(page1, 3)

	page2, total, err := repo.SearchPaginated(ctx, "activity", 1)
	req.NoError(err)
	req.Equal(uint64(7), total)
	req.Len(page2, 3)

	page3, total, err := repo.SearchPaginated(ctx, "activity", 2)
	req.NoError(err)
	req.Equal(uint64(7), total)
	req.Len(page3, 1, "last page holds the remainder")
}

func TestDigestArchiveRepository_SearchNoResults(t *testing.T) {
	req := require.New(t)
	ctx, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewDigestArchiveRepository(badgerDB, blugeWriter, log, lo.ToPtr(50), 10)

	results, total, err := repo.SearchPaginated(ctx, "nonexistent", 0)
	req.NoError(err)
	req.Equal(uint64(0), total)
	req.Empty(results)
}

func TestDigestArchiveRepository_ListByUser(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewDigestArchiveRepository(badgerDB, blugeWriter, log, lo.ToPtr(50), 10)
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	// Given: 5 digests for alice, 1 for bob
	for i := 0; i < 5; i++ {
		req.NoError(repo.Store(DigestRecord{
			ID:      uuid.New(),
			UserID:  "alice",
			Subject: fmt.Sprintf("Digest %d", i),
			Body:    "body",
			SentAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}
	req.NoError(repo.Store(DigestRecord{
		ID: uuid.New(), UserID: "bob", Subject: "Other", Body: "body", SentAt: base,
	}))

	// When: listing the 3 most recent of alice
	records, err := repo.ListByUser("alice", 3)

	// Then: newest first, bob excluded
	req.NoError(err)
	req.Len(records, 3)
	req.Equal("Digest 4", records[0].Subject)
	req.Equal("Digest 3", records[1].Subject)
	req.Equal("Digest 2", records[2].Subject)
	for _, record := range records {
		req.Equal("alice", record.UserID)
	}
}

func TestDigestArchiveRepository_Flush_Idempotent(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repo := NewDigestArchiveRepository(badgerDB, blugeWriter, log, lo.ToPtr(50), 10)

	req.NoError(repo.Flush())
	req.NoError(repo.Flush())
	req.NoError(repo.Flush())
}
