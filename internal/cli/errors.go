package cli

import "fmt"

// UsageError is a malformed command line. It carries the usage text to
// print alongside the error.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError wraps err with usage.
func NewUsageError(err error, usage string) *UsageError {
	return &UsageError{Err: err, Usage: usage}
}

// Message renders the error the way it is shown to the user.
func (e *UsageError) Message(program string) string {
	return fmt.Sprintf("%s: ERROR: %v\n%s", program, e.Err, e.Usage)
}
