package board

import "fmt"

// ParseError reports malformed serialized input: a spiral string or a CSV
// history. It is distinct from move outcomes.
type ParseError struct {
	Input  string // the offending text, or the format name for streams
	Offset int    // byte offset in a spiral string, line number in a CSV stream
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("parse %q at %d: %s", e.Input, e.Offset, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
