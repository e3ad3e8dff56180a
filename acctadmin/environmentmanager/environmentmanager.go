package environmentmanager

import "errors"

// ErrNotSet is returned by Get for variables that are not set.
var ErrNotSet = errors.New("environment variable not set")

type EnvironmentManager interface {
	Get(key string) (string, error)
	List() (map[string]string, error)
}
