package accountmanager

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steelcutops/acctadmin/acctadmin/statemanager"
	"github.com/steelcutops/acctadmin/logger"
)

func newTestAccount(username string) Account {
	return Account{
		Username:   username,
		FirstName:  "John",
		LastName:   "Smith",
		Department: "IT",
		Email:      username + "@company.com",
		Password:   "hunter2!A",
		Enabled:    true,
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func openTestStore(t *testing.T, seed []byte) (*Store, *statemanager.MemoryStateManager, *test.Hook) {
	t.Helper()
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	sm := statemanager.NewMemoryStateManager(seed)
	s := Open(context.Background(), sm, statemanager.JSONCodec{}, logger.New(l, ""))
	return s, sm, hook
}

func warnings(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func TestOpenMissingIsEmpty(t *testing.T) {
	s, _, hook := openTestStore(t, nil)

	assert.Empty(t, s.List())
	assert.Zero(t, warnings(hook))
}

func TestOpenUnparsableWarnsAndIsEmpty(t *testing.T) {
	s, _, hook := openTestStore(t, []byte("{not json"))

	assert.Empty(t, s.List())
	assert.Equal(t, 1, warnings(hook))
}

func TestOpenUnreadableWarnsAndIsEmpty(t *testing.T) {
	l, hook := test.NewNullLogger()
	sm := statemanager.NewMemoryStateManager([]byte("[]"))
	sm.LoadErr = errors.New("permission denied")

	s := Open(context.Background(), sm, statemanager.JSONCodec{}, logger.New(l, ""))

	assert.Zero(t, s.Len())
	assert.Equal(t, 1, warnings(hook))
}

func TestOpenNormalizesAndDropsDuplicates(t *testing.T) {
	seed := []byte(`[
		{"username": "JSmith", "enabled": true},
		{"username": "jsmith", "enabled": false},
		{"username": "  ", "enabled": true}
	]`)
	s, _, hook := openTestStore(t, seed)

	require.Equal(t, 1, s.Len())
	a, ok := s.Find("jsmith")
	require.True(t, ok)
	assert.True(t, a.Enabled)
	assert.Equal(t, 2, warnings(hook))
}

func TestInsertAndFind(t *testing.T) {
	s, _, _ := openTestStore(t, nil)
	want := newTestAccount("jsmith")

	require.NoError(t, s.Insert(want))

	got, ok := s.Find("jsmith")
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = s.Find("  JSMITH ")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestInsertDuplicate(t *testing.T) {
	s, _, _ := openTestStore(t, nil)
	require.NoError(t, s.Insert(newTestAccount("jsmith")))

	err := s.Insert(newTestAccount("JSmith"))
	assert.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Equal(t, 1, s.Len())
}

func TestUpdate(t *testing.T) {
	s, _, _ := openTestStore(t, nil)
	orig := newTestAccount("jsmith")
	require.NoError(t, s.Insert(orig))

	err := s.Update("jsmith", func(a *Account) {
		a.Enabled = false
		a.Username = "hijacked"
		a.CreatedAt = time.Now()
	})
	require.NoError(t, err)

	got, ok := s.Find("jsmith")
	require.True(t, ok)
	assert.False(t, got.Enabled)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	_, ok = s.Find("hijacked")
	assert.False(t, ok)
}

func TestUpdateNotFound(t *testing.T) {
	s, _, _ := openTestStore(t, nil)

	err := s.Update("ghost", func(a *Account) { a.Enabled = false })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDisableThenEnableRoundTrips(t *testing.T) {
	s, _, _ := openTestStore(t, nil)
	orig := newTestAccount("jsmith")
	require.NoError(t, s.Insert(orig))

	require.NoError(t, s.Update("jsmith", func(a *Account) { a.Enabled = false }))
	require.NoError(t, s.Update("jsmith", func(a *Account) { a.Enabled = true }))

	got, _ := s.Find("jsmith")
	assert.Equal(t, orig, got)
}

func TestRemove(t *testing.T) {
	s, _, _ := openTestStore(t, nil)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Insert(newTestAccount(name)))
	}

	require.NoError(t, s.Remove("b"))
	assert.ErrorIs(t, s.Remove("b"), ErrNotFound)

	var names []string
	for _, a := range s.List() {
		names = append(names, a.Username)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestPersistRoundTrip(t *testing.T) {
	codecs := []statemanager.Codec{statemanager.JSONCodec{}, statemanager.YAMLCodec{}}

	for _, codec := range codecs {
		t.Run(codec.Name(), func(t *testing.T) {
			ctx := context.Background()
			l, _ := test.NewNullLogger()
			sm := statemanager.NewFileStateManager(filepath.Join(t.TempDir(), "users."+codec.Name()))

			s := Open(ctx, sm, codec, logger.New(l, ""))
			disabled := newTestAccount("mjones")
			disabled.Enabled = false
			disabled.Department = ""
			require.NoError(t, s.Insert(newTestAccount("jsmith")))
			require.NoError(t, s.Insert(disabled))
			require.NoError(t, s.Persist(ctx))
			first, err := sm.Load(ctx)
			require.NoError(t, err)

			reloaded := Open(ctx, sm, codec, logger.New(l, ""))
			assert.Equal(t, s.List(), reloaded.List())

			require.NoError(t, reloaded.Persist(ctx))
			second, err := sm.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestPersistEmptyStoreWritesEmptyList(t *testing.T) {
	s, sm, _ := openTestStore(t, nil)

	require.NoError(t, s.Persist(context.Background()))
	assert.Equal(t, "[]\n", string(sm.Bytes()))
}

func TestPersistFailure(t *testing.T) {
	s, sm, _ := openTestStore(t, nil)
	sm.SaveErr = errors.New("disk full")

	err := s.Persist(context.Background())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorContains(t, err, "disk full")
}
