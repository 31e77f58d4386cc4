package repositories

import (
	"digest-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	id, err := repo.CreateUser(User{
		Email:         "alice@example.com",
		FullName:      "Alice",
		Realm:         "acme",
		PasswordHash:  "$argon2id$fake",
		DigestEnabled: true,
	})
	req.NoError(err)
	req.NotEmpty(id)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(id, byEmail.ID)
	req.Equal([]string{"user"}, byEmail.Roles, "default role is applied")
	req.False(byEmail.JoinedAt.IsZero(), "JoinedAt defaults to now")

	byID, err := repo.GetUserByID(id)
	req.NoError(err)
	req.Equal(byEmail, byID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	_, err := repo.CreateUser(User{Email: "dup@example.com", FullName: "First", Realm: "acme"})
	req.NoError(err)

	_, err = repo.CreateUser(User{Email: "dup@example.com", FullName: "Second", Realm: "acme"})
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	_, err := repo.GetUserByEmail("ghost@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repo.GetUserByID("no-such-id")
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestUserRepository_SetDigestEnabled(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	id, err := repo.CreateUser(User{
		Email: "bob@example.com", FullName: "Bob", Realm: "acme", DigestEnabled: true,
	})
	req.NoError(err)

	req.NoError(repo.SetDigestEnabled(id, false))

	user, err := repo.GetUserByID(id)
	req.NoError(err)
	req.False(user.DigestEnabled)

	req.ErrorIs(repo.SetDigestEnabled("unknown", false), errors.ErrUserNotFound)
}

func TestUserRepository_ListRealmUsers(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)
	joined := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := repo.CreateUser(User{Email: "a@acme.com", FullName: "A", Realm: "acme", JoinedAt: joined})
	req.NoError(err)
	_, err = repo.CreateUser(User{Email: "b@acme.com", FullName: "B", Realm: "acme", JoinedAt: joined})
	req.NoError(err)
	_, err = repo.CreateUser(User{Email: "c@other.com", FullName: "C", Realm: "other", JoinedAt: joined})
	req.NoError(err)

	members, err := repo.ListRealmUsers("acme")
	req.NoError(err)
	req.Len(members, 2)
	for _, member := range members {
		req.Equal("acme", member.Realm)
	}

	all, err := repo.ListUsers()
	req.NoError(err)
	req.Len(all, 3)
}

func TestUserRepository_Realms(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(db)

	req.NoError(repo.CreateRealm(Realm{Name: "acme", DigestEnabled: true}))

	realm, err := repo.GetRealm("acme")
	req.NoError(err)
	req.True(realm.DigestEnabled)

	_, err = repo.GetRealm("missing")
	req.ErrorIs(err, errors.ErrRealmNotFound)
}
