package remap

import "fmt"

// MalformedInputError - the source configuration has no usable module list.
// It is the only hard failure of the remapper, everything else falls back to
// documented defaults.
type MalformedInputError struct {
	Key    string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf(`malformed source configuration: key "%s" %s`, e.Key, e.Reason)
}
