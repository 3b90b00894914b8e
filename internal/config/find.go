package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectConfigName is the name of a config file that applies to a directory
// tree.
const ProjectConfigName = ".mdlist.yaml"

// ErrNotFound is returned by FindUp when no directory has the named file.
var ErrNotFound = errors.New("config file not found")

// FindUp looks for name in dir, then in every parent of dir, returning the
// absolute path of the first regular file found.
func FindUp(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
