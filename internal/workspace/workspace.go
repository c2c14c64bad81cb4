// Package workspace locates the directory tree that holds a project's
// mapped files and walks it. A workspace is any directory containing a
// .lingo marker directory; commands run from anywhere below it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// MarkerDir is the directory that marks a workspace root.
const MarkerDir = ".lingo"

// ErrNoWorkspace is returned when no ancestor directory carries the
// marker.
var ErrNoWorkspace = errors.New("no " + MarkerDir + " directory found in this or any parent directory")

// FindRoot walks from start up through its ancestors and returns the
// first directory containing the marker. A plain file named like the
// marker does not count.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, MarkerDir))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoWorkspace
		}
		dir = parent
	}
}

// Files returns every regular file under root as an absolute path,
// sorted. Symlinks are followed; symlinks that resolve to directories
// are traversed, not listed. Unreadable entries are skipped.
func Files(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var (
		mu    sync.Mutex
		files []string
	)
	conf := fastwalk.Config{Follow: true}
	err = fastwalk.Walk(&conf, abs, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				return nil
			}
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}

	// The walk runs concurrently, so order arrives scrambled.
	sort.Strings(files)
	return files, nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
