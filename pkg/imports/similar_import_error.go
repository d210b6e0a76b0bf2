package imports

import "fmt"

// SimilarImportError is returned when an existing import shares the final
// segment of, or is a prefix of, the candidate and may not be overwritten.
type SimilarImportError struct {
	FQN      string
	Existing string
}

func (e *SimilarImportError) Error() string {
	return fmt.Sprintf("use statement %q already exists", e.Existing)
}
