package questdb

import "fmt"

// ServerError is a statement rejection reported inside the response
// envelope. Position is the byte offset of the offending token in the
// statement text.
type ServerError struct {
	Query    string
	Message  string
	Position int
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("server error at position %d: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}
