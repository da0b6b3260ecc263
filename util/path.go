package util

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// FileExists reports whether the named file or directory exists.
func FileExists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, os.ErrNotExist)
}

// MakeDirectory creates dir and any missing parents with owner-only
// permissions.
func MakeDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		var pathErr *os.PathError
		// a dangling symlink usually means an unmounted volume
		if errors.As(err, &pathErr) && os.IsExist(err) {
			if link, lerr := os.Readlink(pathErr.Path); lerr == nil {
				err = fmt.Errorf("is symlink %s -> %s mounted?", pathErr.Path, link)
			}
		}
		return fmt.Errorf("failed to create dir %s: %w", dir, err)
	}
	return nil
}

// CleanAndExpandPath expands environment variables and a leading ~ in path
// and cleans the result.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		homeDir := os.Getenv("HOME")
		if u, err := user.Current(); err == nil {
			homeDir = u.HomeDir
		}
		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}
