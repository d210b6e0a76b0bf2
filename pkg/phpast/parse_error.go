package phpast

import "fmt"

// ParseError is returned when a file cannot be summarized.
type ParseError struct {
	Filename string
	Line     int
	Column   int
	Reason   string
}

func (e *ParseError) Error() string {
	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Reason)
}
