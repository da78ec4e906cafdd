package ui

import (
	"errors"

	"github.com/hubastard/groveui/engine/core"
)

var logger = core.NewLogger("ui")

var (
	// ErrInvalidPreset is returned when a preset id names no element.
	ErrInvalidPreset = errors.New("invalid element id")
	// ErrInvalidUI is returned when a UI file id is unknown.
	ErrInvalidUI = errors.New("invalid ui id")
)
