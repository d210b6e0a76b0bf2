package imports

import "fmt"

// AliasConflictError is returned when the base name of an import candidate is
// used as the alias of a different import.
type AliasConflictError struct {
	Name     string
	Existing string
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("class %q is used as alias of %s", e.Name, e.Existing)
}
