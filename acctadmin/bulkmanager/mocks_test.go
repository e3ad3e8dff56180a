package bulkmanager

import (
	"context"

	"github.com/stretchr/testify/mock"

	am "github.com/steelcutops/acctadmin/acctadmin/accountmanager"
	"github.com/steelcutops/acctadmin/acctadmin/csvmanager"
)

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) Find(username string) (am.Account, bool) {
	args := m.Called(username)
	return args.Get(0).(am.Account), args.Bool(1)
}

func (m *MockAccountStore) Insert(account am.Account) error {
	return m.Called(account).Error(0)
}

func (m *MockAccountStore) Update(username string, mutate func(*am.Account)) error {
	return m.Called(username, mutate).Error(0)
}

func (m *MockAccountStore) Remove(username string) error {
	return m.Called(username).Error(0)
}

func (m *MockAccountStore) List() []am.Account {
	return m.Called().Get(0).([]am.Account)
}

func (m *MockAccountStore) Persist(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockRowReader struct {
	mock.Mock
}

func (m *MockRowReader) ReadRows(ctx context.Context, path string) ([]csvmanager.Row, error) {
	args := m.Called(ctx, path)
	return args.Get(0).([]csvmanager.Row), args.Error(1)
}
