package accountmanager

import (
	"context"
	"strings"
	"time"
)

// Account represents one managed user account.
type Account struct {
	Username   string    `json:"username" yaml:"username"`
	FirstName  string    `json:"first_name" yaml:"first_name"`
	LastName   string    `json:"last_name" yaml:"last_name"`
	Department string    `json:"department" yaml:"department"`
	Email      string    `json:"email" yaml:"email"`
	Password   string    `json:"password" yaml:"password"` // stored in clear text
	Enabled    bool      `json:"enabled" yaml:"enabled"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// AccountStore encompasses the operations the bulk engine needs from a
// record store. Usernames are normalized with NormalizeUsername before any
// lookup.
type AccountStore interface {
	// Finds an account by username
	Find(username string) (Account, bool)

	// Adds a new account, failing with ErrDuplicateAccount if it exists
	Insert(account Account) error

	// Applies mutate to an existing account, failing with ErrNotFound
	Update(username string, mutate func(*Account)) error

	// Removes an account, failing with ErrNotFound
	Remove(username string) error

	// Lists all accounts in insertion order
	List() []Account

	// Writes the full set to the backing store
	Persist(ctx context.Context) error
}

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
