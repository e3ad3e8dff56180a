package statemanager

import (
	"context"
	"errors"
)

// ErrNoState is returned by Load when nothing has been saved yet.
var ErrNoState = errors.New("no saved state")

// StateManager reads and writes a complete snapshot of serialized state.
// Every Save replaces the previous snapshot in full.
type StateManager interface {
	// Load returns the most recently saved snapshot, or ErrNoState.
	Load(ctx context.Context) ([]byte, error)

	// Save overwrites the snapshot with data.
	Save(ctx context.Context, data []byte) error

	// Location names where the snapshot lives, for log messages.
	Location() string
}
