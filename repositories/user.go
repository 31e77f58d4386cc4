//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"digest-lab/errors"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(user User) (string, error)
	GetUserByEmail(email string) (User, error)
	GetUserByID(id string) (User, error)
	ListUsers() ([]User, error)
	ListRealmUsers(realm string) ([]User, error)
	SetDigestEnabled(id string, enabled bool) error
	CreateRealm(realm Realm) error
	GetRealm(name string) (Realm, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the domain-friendly representation of a user in the repository layer.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Realm           string    `json:"realm"`
	PasswordHash    string    `json:"password_hash"`
	Roles           []string  `json:"roles"`
	IsBot           bool      `json:"is_bot"`
	JoinedAt        time.Time `json:"joined_at"`
	DigestEnabled   bool      `json:"digest_enabled"`
	SoftDeactivated bool      `json:"soft_deactivated"`
}

// Realm groups users under one organization. The digest switch here is the
// realm-wide kill switch; each user additionally carries their own.
type Realm struct {
	Name          string `json:"name"`
	DigestEnabled bool   `json:"digest_enabled"`
}

// CreateUser persists the user and a secondary id->email index.
// It returns the newly generated User ID.
func (u UserRepository) CreateUser(user User) (string, error) {
	user.ID = uuid.New().String()
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now().UTC()
	}
	if len(user.Roles) == 0 {
		user.Roles = []string{"user"}
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		key := []byte("user:" + user.Email)
		if _, err = txn.Get(key); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		// Index keeps GetUserByID a two-hop lookup instead of a full scan.
		return txn.Set([]byte("userid:"+user.ID), []byte(user.Email))
	})
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

func (u UserRepository) GetUserByEmail(email string) (User, error) {
	var user User

	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("user:" + email))
		if err != nil {
			return err // Will be handled as ErrInvalidCredentials or ErrUserNotFound
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})

	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return user, nil
}

func (u UserRepository) GetUserByID(id string) (User, error) {
	var email string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("userid:" + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			email = string(val)
			return nil
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u.GetUserByEmail(email)
}

// ListUsers scans the whole user keyspace. The digest sweep runs it once per
// cron tick; fine at this scale, an index would be the next step if it grows.
func (u UserRepository) ListUsers() ([]User, error) {
	var users []User
	err := u.db.View(func(txn *badger.Txn) error {
		prefix := []byte("user:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var user User
				if err := json.Unmarshal(val, &user); err != nil {
					return err
				}
				users = append(users, user)
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
	return users, nil
}

// ListRealmUsers keeps members of the given realm.
func (u UserRepository) ListRealmUsers(realm string) ([]User, error) {
	users, err := u.ListUsers()
	if err != nil {
		return nil, err
	}
	var members []User
	for _, user := range users {
		if user.Realm == realm {
			members = append(members, user)
		}
	}
	return members, nil
}

// SetDigestEnabled flips the per-user digest switch. Used by the one-click
// unsubscribe endpoint, so it must not require a password or a session.
func (u UserRepository) SetDigestEnabled(id string, enabled bool) error {
	user, err := u.GetUserByID(id)
	if err != nil {
		return err
	}
	user.DigestEnabled = enabled

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("user:"+user.Email), data)
	})
}

func (u UserRepository) CreateRealm(realm Realm) error {
	data, err := json.Marshal(realm)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("realm:"+realm.Name), data)
	})
}

func (u UserRepository) GetRealm(name string) (Realm, error) {
	var realm Realm
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("realm:" + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &realm)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return Realm{}, errors.ErrRealmNotFound
	}
	if err != nil {
		return Realm{}, err
	}
	return realm, nil
}
