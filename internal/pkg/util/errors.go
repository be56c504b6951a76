package util

import "fmt"

// ParseError a value could not be parsed; callers degrade instead of aborting
type ParseError struct {
	Kind  string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
