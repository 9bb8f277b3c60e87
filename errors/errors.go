package errors

import "fmt"

// ParseError wraps a request decoding error with the section it occurred in.
type ParseError struct {
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q section: %v", e.Section, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrMissingSection = fmt.Errorf("required request section is missing")
	ErrNegativeCount  = fmt.Errorf("count fields must not be negative")
	ErrInvalidDate    = fmt.Errorf("invalid date")
	ErrInvalidHour    = fmt.Errorf("hour must be between 0 and 23")
	ErrMissingCounter = fmt.Errorf("counter entries require an id")
	ErrEmptyRequest   = fmt.Errorf("empty request document")
)
