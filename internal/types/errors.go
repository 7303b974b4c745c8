package types

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failures the renamer reports.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindCountMismatch
	KindTransport
	KindRename
	KindMissingUser
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindCountMismatch:
		return "count mismatch"
	case KindTransport:
		return "transport failure"
	case KindRename:
		return "rename failure"
	case KindMissingUser:
		return "missing user"
	case KindConfig:
		return "config error"
	default:
		return "unknown"
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first typed error in err's chain.
func KindOf(err error) ErrorKind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// ErrCountMismatch is returned in strict mode when the numbers of videos
// and subtitles differ.
type ErrCountMismatch struct {
	Videos    int
	Subtitles int
}

func (e ErrCountMismatch) Error() string {
	return fmt.Sprintf("subtitle count (%d) does not match video count (%d)", e.Subtitles, e.Videos)
}

func (e ErrCountMismatch) Kind() ErrorKind { return KindCountMismatch }

// ErrTransport wraps a failure from listing, reading or connecting.
type ErrTransport struct {
	Op   string
	Path string
	Err  error
}

func (e ErrTransport) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e ErrTransport) Unwrap() error { return e.Err }

func (e ErrTransport) Kind() ErrorKind { return KindTransport }

// ErrRename reports the plan entry that aborted a live run.
type ErrRename struct {
	Index  int
	Source string
	Target string
	Err    error
}

func (e ErrRename) Error() string {
	return fmt.Sprintf("rename #%d failed (%s → %s): %v", e.Index+1, e.Source, e.Target, e.Err)
}

func (e ErrRename) Unwrap() error { return e.Err }

func (e ErrRename) Kind() ErrorKind { return KindRename }

// ErrMissingUser is returned when a remote target has no user name.
type ErrMissingUser struct {
	Host string
}

func (e ErrMissingUser) Error() string {
	return fmt.Sprintf("a user name is required for %s (use --ssh-user or user@host)", e.Host)
}

func (e ErrMissingUser) Kind() ErrorKind { return KindMissingUser }

// ErrConfig wraps a configuration file that could not be read or parsed.
type ErrConfig struct {
	Path string
	Err  error
}

func (e ErrConfig) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e ErrConfig) Unwrap() error { return e.Err }

func (e ErrConfig) Kind() ErrorKind { return KindConfig }
