package accountmanager

import "errors"

var (
	// ErrDuplicateAccount is returned when inserting a username that exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrNotFound is returned when an account does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrPersistence wraps failures writing the backing store.
	ErrPersistence = errors.New("persist accounts")
)
