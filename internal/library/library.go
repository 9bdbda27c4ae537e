// Package library is the filesystem bookkeeping layer: it lists the fixed
// downloads and trimmed directories and reads files back for re-serving.
// Existence of a file in a directory is the only notion of state; there is
// no metadata store, deduplication, or locking across sessions.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"clipcatch/internal/model"
	"clipcatch/internal/util"
)

// ErrBadName rejects file names that are not plain base names (traversal,
// separators, empty strings).
var ErrBadName = errors.New("invalid file name")

// Library exposes the two fixed media directories.
type Library struct {
	downloadsDir string
	trimmedDir   string
}

// New constructs a Library and creates both directories.
func New(downloadsDir, trimmedDir string) (*Library, error) {
	if err := util.EnsureDir(downloadsDir); err != nil {
		return nil, fmt.Errorf("ensure downloads dir: %w", err)
	}
	if err := util.EnsureDir(trimmedDir); err != nil {
		return nil, fmt.Errorf("ensure trimmed dir: %w", err)
	}
	return &Library{downloadsDir: downloadsDir, trimmedDir: trimmedDir}, nil
}

// DownloadsDir returns the raw downloads directory path.
func (l *Library) DownloadsDir() string { return l.downloadsDir }

// TrimmedDir returns the trimmed outputs directory path.
func (l *Library) TrimmedDir() string { return l.trimmedDir }

// Downloads lists the downloads directory, sorted by name.
func (l *Library) Downloads() ([]model.LibraryEntry, error) {
	return listDir(l.downloadsDir)
}

// Trimmed lists the trimmed directory, sorted by name.
func (l *Library) Trimmed() ([]model.LibraryEntry, error) {
	return listDir(l.trimmedDir)
}

// ResolveDownload maps a user-supplied base name to a path inside the
// downloads directory, rejecting anything that could escape it.
func (l *Library) ResolveDownload(name string) (string, error) {
	return resolve(l.downloadsDir, name)
}

// ResolveTrimmed maps a user-supplied base name to a path inside the trimmed
// directory.
func (l *Library) ResolveTrimmed(name string) (string, error) {
	return resolve(l.trimmedDir, name)
}

// ReadAll loads an entire file into memory for re-serving through the
// browser. Deliberately unstreamed: single operator, modest file sizes.
func ReadAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func resolve(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	path := filepath.Join(dir, name)
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q is not a regular file", ErrBadName, name)
	}
	return path, nil
}

func listDir(dir string) ([]model.LibraryEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []model.LibraryEntry
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, model.LibraryEntry{
			Name:    e.Name(),
			Bytes:   fi.Size(),
			ModUnix: fi.ModTime().Unix(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
