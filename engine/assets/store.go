// Package assets loads the files a UI needs from the configured asset
// directories: images, shaders, UI files, scripts, fonts and localization.
package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hubastard/groveui/engine/config"
	"github.com/hubastard/groveui/engine/core"
	"github.com/hubastard/groveui/engine/local"
	"github.com/hubastard/groveui/engine/ui"
)

type Store struct {
	paths config.PathsConfig
	log   *slog.Logger
}

func NewStore(paths config.PathsConfig) *Store {
	return &Store{paths: paths, log: core.NewLogger("assets")}
}

// files lists the regular files under dir with the given extension, sorted
// by path. A missing dir is empty.
func files(dir, ext string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// UIFiles decodes every .json file under the UI directory. A file without
// an id takes its path relative to the directory, minus the extension.
func (s *Store) UIFiles() ([]*ui.File, error) {
	paths, err := files(s.paths.UI, ".json")
	if err != nil {
		return nil, err
	}
	var errs []error
	out := make([]*ui.File, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f := &ui.File{}
		if err := json.Unmarshal(b, f); err != nil {
			errs = append(errs, fmt.Errorf("ui file %q: %w", path, err))
			continue
		}
		rel, _ := filepath.Rel(s.paths.UI, path)
		if f.ID == "" {
			f.ID = strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		}
		if f.Path == "" {
			f.Path = filepath.ToSlash(rel)
		}
		out = append(out, f)
	}
	s.log.Debug("ui files loaded", "count", len(out), "failed", len(errs))
	return out, errors.Join(errs...)
}

// Scripts reads every .js file under the script directory keyed by its
// relative path without extension.
func (s *Store) Scripts() (map[string]string, error) {
	paths, err := files(s.paths.Scripts, ".js")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		rel, _ := filepath.Rel(s.paths.Scripts, path)
		out[strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))] = string(b)
	}
	return out, nil
}

// Localization decodes the localization file. A missing file yields empty
// data.
func (s *Store) Localization() (*local.Data, error) {
	d := &local.Data{}
	b, err := os.ReadFile(s.paths.Localization)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("no localization file", "path", s.paths.Localization)
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("localization %q: %w", s.paths.Localization, err)
	}
	return d, nil
}

// Font reads a font file from the font directory.
func (s *Store) Font(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.paths.Fonts, name))
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	return b, nil
}
