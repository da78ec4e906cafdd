//go:build !profile

package profiler

import "errors"

// Enabled reports whether scopes are recorded. Build with -tags profile.
const Enabled = false

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Dump(path string) error { return errDisabled }

func OpenProfilerGraph() (string, error) { return "", errDisabled }

var errDisabled = errors.New("profiler: built without the profile tag")
