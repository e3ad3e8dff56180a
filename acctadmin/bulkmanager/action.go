package bulkmanager

import (
	"fmt"
	"strings"
)

// Action is one operation the engine can drive across targets.
type Action string

const (
	ActionCreate        Action = "Create"
	ActionDisable       Action = "Disable"
	ActionEnable        Action = "Enable"
	ActionResetPassword Action = "ResetPassword"
	ActionDelete        Action = "Delete"
	ActionGetInfo       Action = "GetInfo"
	ActionListAll       Action = "ListAll"
)

// Actions lists every action in display order.
func Actions() []Action {
	return []Action{
		ActionCreate,
		ActionDisable,
		ActionEnable,
		ActionResetPassword,
		ActionDelete,
		ActionGetInfo,
		ActionListAll,
	}
}

// ParseAction matches s against the known actions, ignoring case.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrValidation, s)
}

func (a Action) String() string {
	return string(a)
}
