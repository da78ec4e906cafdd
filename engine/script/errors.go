package script

import "fmt"

// Error is a failure inside a behavior script or command list, tagged with
// the element and event that triggered it.
type Error struct {
	Element string
	Preset  string
	Event   string
	Source  string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s on %q (preset %s) during %s: %v", e.Source, e.Element, e.Preset, e.Event, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
