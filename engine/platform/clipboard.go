package platform

import (
	"github.com/atotto/clipboard"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Clipboard is the system clipboard. When no clipboard utility is
// available it falls back to the GLFW clipboard, which needs an open window.
type Clipboard struct{}

func (Clipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return glfw.GetClipboardString(), nil
	}
	return clipboard.ReadAll()
}

func (Clipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		glfw.SetClipboardString(text)
		return nil
	}
	return clipboard.WriteAll(text)
}
