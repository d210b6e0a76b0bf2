package imports

import "fmt"

// NameConflictError is returned when the base name of an import candidate is
// already bound by another import and no alias was chosen.
type NameConflictError struct {
	FQN string
	// Existing is the path of the import already binding the name.
	Existing string
	// Cancelled is set when the user dismissed the alias prompt.
	Cancelled bool
}

func (e *NameConflictError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("%s conflicts with %s: no alias given", e.FQN, e.Existing)
	}
	return fmt.Sprintf("%s conflicts with %s", e.FQN, e.Existing)
}
