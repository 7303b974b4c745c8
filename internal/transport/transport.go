// Package transport implements directory access for local and remote
// (SFTP) targets.
package transport

// Entry is one element of a flat directory listing.
type Entry struct {
	Name   string
	IsFile bool
}

// Transport lists, reads and renames files in a single directory tree.
type Transport interface {
	// Name identifies the transport ("local", "sftp").
	Name() string
	// List returns the entries of dir without recursing.
	List(dir string) ([]Entry, error)
	// Rename moves oldPath to newPath.
	Rename(oldPath, newPath string) error
	// ReadFile returns at most limit bytes of the file at p.
	ReadFile(p string, limit int64) ([]byte, error)
	// Join joins a directory and a name with the transport's separator.
	Join(dir, name string) string
	Close() error
}
