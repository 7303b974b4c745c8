package transport

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const schemeLocal = "local"

func init() {
	Register(localFactory{})
}

type localFactory struct{}

func (localFactory) Name() string { return schemeLocal }

func (localFactory) MatchesTarget(raw string) bool {
	return !strings.Contains(raw, "://") || hasScheme(raw, "file")
}

func (localFactory) Open(_ context.Context, target Target) (Transport, error) {
	return Local{}, nil
}

// Local accesses the local filesystem.
type Local struct{}

func (Local) Name() string { return schemeLocal }

// List returns the entries of dir. Symbolic links count as files when
// they point at a regular file.
func (Local) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		isFile := e.Type().IsRegular()
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil {
				isFile = info.Mode().IsRegular()
			}
		}
		entries = append(entries, Entry{Name: e.Name(), IsFile: isFile})
	}
	return entries, nil
}

func (Local) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (Local) ReadFile(p string, limit int64) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

func (Local) Join(dir, name string) string {
	return filepath.Join(dir, name)
}

func (Local) Close() error { return nil }
