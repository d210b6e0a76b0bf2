package config

import "fmt"

// Error reports a missing or invalid setting.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}
