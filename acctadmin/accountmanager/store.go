package accountmanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/steelcutops/acctadmin/acctadmin/statemanager"
	"github.com/steelcutops/acctadmin/logger"
)

// Store is the in-memory account collection for one invocation, loaded from
// and persisted to a StateManager.
type Store struct {
	state    statemanager.StateManager
	codec    statemanager.Codec
	log      logger.Logger
	accounts map[string]Account
	order    []string
}

var _ AccountStore = (*Store)(nil)

// Open loads the snapshot held by state. A missing snapshot yields an empty
// store. An unreadable or unparsable snapshot is logged as a warning and
// also yields an empty store; the next Persist overwrites it.
func Open(ctx context.Context, state statemanager.StateManager, codec statemanager.Codec, log logger.Logger) *Store {
	s := &Store{
		state:    state,
		codec:    codec,
		log:      log,
		accounts: make(map[string]Account),
	}

	data, err := state.Load(ctx)
	if err != nil {
		if !errors.Is(err, statemanager.ErrNoState) {
			log.Warn("Could not read account store, starting empty", "location", state.Location(), "error", err)
		} else {
			log.Debug("No account store found, starting empty", "location", state.Location())
		}
		return s
	}

	var accounts []Account
	if err := codec.Unmarshal(data, &accounts); err != nil {
		log.Warn("Could not parse account store, starting empty", "location", state.Location(), "format", codec.Name(), "error", err)
		return s
	}

	for _, a := range accounts {
		a.Username = NormalizeUsername(a.Username)
		if a.Username == "" {
			log.Warn("Ignoring stored account without username", "location", state.Location())
			continue
		}
		if err := s.Insert(a); err != nil {
			log.Warn("Ignoring duplicate stored account", "username", a.Username)
		}
	}

	log.Debug("Loaded account store", "location", state.Location(), "count", len(s.order))
	return s
}

func (s *Store) Find(username string) (Account, bool) {
	a, ok := s.accounts[NormalizeUsername(username)]
	return a, ok
}

func (s *Store) Insert(account Account) error {
	account.Username = NormalizeUsername(account.Username)
	if _, ok := s.accounts[account.Username]; ok {
		return fmt.Errorf("insert %s: %w", account.Username, ErrDuplicateAccount)
	}
	s.accounts[account.Username] = account
	s.order = append(s.order, account.Username)
	return nil
}

// Update applies mutate to a copy of the account. Username and CreatedAt
// are restored afterwards, whatever mutate did to them.
func (s *Store) Update(username string, mutate func(*Account)) error {
	key := NormalizeUsername(username)
	current, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("update %s: %w", key, ErrNotFound)
	}

	next := current
	mutate(&next)
	next.Username = current.Username
	next.CreatedAt = current.CreatedAt

	s.accounts[key] = next
	return nil
}

func (s *Store) Remove(username string) error {
	key := NormalizeUsername(username)
	if _, ok := s.accounts[key]; !ok {
		return fmt.Errorf("remove %s: %w", key, ErrNotFound)
	}

	delete(s.accounts, key)
	for i, name := range s.order {
		if name == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) List() []Account {
	accounts := make([]Account, 0, len(s.order))
	for _, name := range s.order {
		accounts = append(accounts, s.accounts[name])
	}
	return accounts
}

func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) Persist(ctx context.Context) error {
	data, err := s.codec.Marshal(s.List())
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistence, s.codec.Name(), err)
	}

	if err := s.state.Save(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.log.Debug("Saved account store", "location", s.state.Location(), "count", len(s.order))
	return nil
}
