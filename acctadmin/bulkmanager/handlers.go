package bulkmanager

import (
	"fmt"

	am "github.com/steelcutops/acctadmin/acctadmin/accountmanager"
)

// handler implements one per-target action. apply returns the outcome
// detail and, for mutating actions, an undo that reverts the in-memory
// change when persisting fails.
type handler struct {
	verb     string
	mutating bool
	apply    func(m *BulkManager, t Target) (string, func() error, error)
	simulate func(m *BulkManager, t Target) string
}

func handlers() map[Action]handler {
	return map[Action]handler{
		ActionCreate: {
			verb:     "create",
			mutating: true,
			apply:    applyCreate,
			simulate: func(m *BulkManager, t Target) string {
				a := m.newAccount(t)
				return fmt.Sprintf("Would create account %s (email: %s, department: %s, password: %s)",
					a.Username, a.Email, a.Department, a.Password)
			},
		},
		ActionDisable: {
			verb:     "disable",
			mutating: true,
			apply: func(m *BulkManager, t Target) (string, func() error, error) {
				return m.update(t, "Disabled account "+t.Username, func(a *am.Account) { a.Enabled = false })
			},
			simulate: func(m *BulkManager, t Target) string {
				return "Would disable account " + t.Username
			},
		},
		ActionEnable: {
			verb:     "enable",
			mutating: true,
			apply: func(m *BulkManager, t Target) (string, func() error, error) {
				return m.update(t, "Enabled account "+t.Username, func(a *am.Account) { a.Enabled = true })
			},
			simulate: func(m *BulkManager, t Target) string {
				return "Would enable account " + t.Username
			},
		},
		ActionResetPassword: {
			verb:     "reset password for",
			mutating: true,
			apply: func(m *BulkManager, t Target) (string, func() error, error) {
				pw := m.password(m.passwordLength)
				detail := fmt.Sprintf("Reset password for %s (new password: %s)", t.Username, pw)
				return m.update(t, detail, func(a *am.Account) { a.Password = pw })
			},
			simulate: func(m *BulkManager, t Target) string {
				return fmt.Sprintf("Would reset password for %s (new password: %s)", t.Username, m.password(m.passwordLength))
			},
		},
		ActionDelete: {
			verb:     "delete",
			mutating: true,
			apply:    applyDelete,
			simulate: func(m *BulkManager, t Target) string {
				return "Would delete account " + t.Username
			},
		},
		ActionGetInfo: {
			verb:  "get info for",
			apply: applyGetInfo,
			simulate: func(m *BulkManager, t Target) string {
				return "Would show account " + t.Username
			},
		},
	}
}

func (m *BulkManager) newAccount(t Target) am.Account {
	a := am.Account{
		Username:   t.Username,
		FirstName:  t.FirstName,
		LastName:   t.LastName,
		Department: t.Department,
		Email:      t.Email,
		Password:   t.Password,
		Enabled:    true,
		CreatedAt:  m.now(),
	}
	if a.Email == "" {
		a.Email = am.DefaultEmail(a.Username, m.emailDomain)
	}
	if a.Password == "" {
		a.Password = m.password(m.passwordLength)
	}
	return a
}

func applyCreate(m *BulkManager, t Target) (string, func() error, error) {
	a := m.newAccount(t)
	if err := m.store.Insert(a); err != nil {
		return "", nil, err
	}

	undo := func() error { return m.store.Remove(a.Username) }
	detail := fmt.Sprintf("Created account %s (email: %s, password: %s)", a.Username, a.Email, a.Password)
	return detail, undo, nil
}

func (m *BulkManager) update(t Target, detail string, mutate func(*am.Account)) (string, func() error, error) {
	prev, ok := m.store.Find(t.Username)
	if !ok {
		return "", nil, fmt.Errorf("%s: %w", t.Username, am.ErrNotFound)
	}
	if err := m.store.Update(t.Username, mutate); err != nil {
		return "", nil, err
	}

	undo := func() error {
		return m.store.Update(t.Username, func(a *am.Account) { *a = prev })
	}
	return detail, undo, nil
}

func applyDelete(m *BulkManager, t Target) (string, func() error, error) {
	prev, ok := m.store.Find(t.Username)
	if !ok {
		return "", nil, fmt.Errorf("%s: %w", t.Username, am.ErrNotFound)
	}
	if err := m.store.Remove(t.Username); err != nil {
		return "", nil, err
	}

	undo := func() error { return m.store.Insert(prev) }
	return "Deleted account " + t.Username, undo, nil
}

func applyGetInfo(m *BulkManager, t Target) (string, func() error, error) {
	a, ok := m.store.Find(t.Username)
	if !ok {
		return "", nil, fmt.Errorf("%s: %w", t.Username, am.ErrNotFound)
	}

	m.log.Info("Account details",
		"username", a.Username,
		"name", a.FirstName+" "+a.LastName,
		"department", a.Department,
		"email", a.Email,
		"enabled", a.Enabled,
		"created_at", a.CreatedAt.Format("2006-01-02 15:04:05"),
	)

	detail := fmt.Sprintf("Account %s: %s %s, %s, %s, %s, created %s",
		a.Username, a.FirstName, a.LastName, a.Department, a.Email,
		status(a.Enabled), a.CreatedAt.Format("2006-01-02"))
	return detail, nil, nil
}
