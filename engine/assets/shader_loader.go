package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Shader reads a GLSL file. A missing file returns "" and no error so the
// caller can fall back to built-in sources.
func (s *Store) Shader(name string) (string, error) {
	path := filepath.Join(s.paths.Shaders, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}
