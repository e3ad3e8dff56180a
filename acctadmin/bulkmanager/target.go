package bulkmanager

import (
	"fmt"

	am "github.com/steelcutops/acctadmin/acctadmin/accountmanager"
	"github.com/steelcutops/acctadmin/acctadmin/csvmanager"
)

// Target is one identity an action is attempted against.
type Target struct {
	Line       int // source line for tabular input, 0 otherwise
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Department string
	Password   string
}

func targetFromRow(r csvmanager.Row) Target {
	return Target{
		Line:       r.Line,
		Username:   r.Get("Username"),
		FirstName:  r.Get("FirstName"),
		LastName:   r.Get("LastName"),
		Email:      r.Get("Email"),
		Department: r.Get("Department"),
		Password:   r.Get("Password"),
	}
}

// resolveRow fills in the username for a tabular row. Create rows may
// derive it from the names; every other action needs it in the row.
func resolveRow(action Action, t Target) (Target, error) {
	t.Username = am.NormalizeUsername(t.Username)
	if action == ActionCreate && t.Username == "" {
		t.Username = am.GenerateUsername(t.FirstName, t.LastName)
		if t.Username == "" {
			return t, fmt.Errorf("line %d: FirstName and LastName or Username required: %w", t.Line, ErrMalformedInput)
		}
	}
	if t.Username == "" {
		return t, fmt.Errorf("line %d: Username required: %w", t.Line, ErrMalformedInput)
	}
	return t, nil
}

// resolveSingle validates a directly supplied target. Create needs both
// names; other actions need a username or both names to derive one from.
func resolveSingle(action Action, t Target) (Target, error) {
	t.Username = am.NormalizeUsername(t.Username)

	if action == ActionCreate {
		if t.FirstName == "" || t.LastName == "" {
			return t, fmt.Errorf("%w: first and last name are required to create an account", ErrValidation)
		}
		if t.Username == "" {
			t.Username = am.GenerateUsername(t.FirstName, t.LastName)
		}
		return t, nil
	}

	if t.Username == "" {
		t.Username = am.GenerateUsername(t.FirstName, t.LastName)
	}
	if t.Username == "" {
		return t, fmt.Errorf("%w: username (or first and last name) is required for %s", ErrValidation, action)
	}
	return t, nil
}
