package imports

import "fmt"

// AlreadyImportedError is returned when the file already imports the name.
type AlreadyImportedError struct {
	FQN string
}

func (e *AlreadyImportedError) Error() string {
	return fmt.Sprintf("%s is already imported", e.FQN)
}
