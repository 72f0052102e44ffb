package inventory

import "fmt"

// DecodeError reports input that is not valid JSON or does not match the
// asset shape. Line is the 1-based input line for line-delimited input and 0
// for a whole-document array.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode asset on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("decode asset array: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FieldError reports a required asset field that is absent.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("asset is missing required field %q", e.Field)
}

// ServiceKeyError reports a service key without an address and port.
type ServiceKeyError struct {
	Key string
}

func (e *ServiceKeyError) Error() string {
	return fmt.Sprintf("malformed service key %q: want address/port[/name]", e.Key)
}
