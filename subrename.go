// Package subrename renames subtitle files after the videos they belong to.
//
// Videos and subtitles in one directory are sorted by name and paired in
// order. Each subtitle is renamed to its video's base name, optionally
// followed by a language tag found in the subtitle's name or detected from
// its text. Local directories and SFTP servers are handled the same way.
package subrename

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/language"
	"github.com/mydehq/subrename/internal/matcher"
	"github.com/mydehq/subrename/internal/renamer"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

type (
	Event           = types.Event
	EventType       = types.EventType
	RenameOperation = types.RenameOperation
	Report          = types.Report
	MediaFile       = types.MediaFile
	Collision       = matcher.Collision
	Transport       = transport.Transport
)

const (
	EventInfo    = types.EventInfo
	EventWarning = types.EventWarning
	EventSuccess = types.EventSuccess
	EventError   = types.EventError
)

// RenamePlan is the result of planning a directory.
type RenamePlan struct {
	Dir              string
	Operations       []RenameOperation
	Videos           int
	Subtitles        int
	SurplusVideos    []MediaFile // Left without a subtitle
	SurplusSubtitles []MediaFile // Left without a video
	Ignored          []string
	Collisions       []Collision
}

// Pending returns the operations that would change a file name.
func (p *RenamePlan) Pending() int {
	n := 0
	for _, op := range p.Operations {
		if !op.NoOp() {
			n++
		}
	}
	return n
}

type session struct {
	*options
}

func newSession(opts []Option) session {
	o := applyOptions(opts)
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return session{o}
}

func (s session) emit(typ EventType, format string, args ...any) {
	if s.events != nil {
		s.events(Event{Type: typ, Message: fmt.Sprintf(format, args...)})
	}
}

// Plan scans dir through t and builds the rename plan without touching any
// file. Mismatched counts are truncated with a warning, or rejected with
// ErrCountMismatch under WithStrict.
func Plan(ctx context.Context, t Transport, dir string, opts ...Option) (*RenamePlan, error) {
	return newSession(opts).plan(ctx, t, dir)
}

func (s session) plan(ctx context.Context, t Transport, dir string) (*RenamePlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("Scanning", "dir", dir, "transport", t.Name())
	scan, err := config.Scan(t, dir)
	if err != nil {
		return nil, err
	}
	s.emit(EventInfo, "Found: %d videos, %d subtitles", len(scan.Videos), len(scan.Subtitles))

	p := &RenamePlan{
		Dir:       dir,
		Videos:    len(scan.Videos),
		Subtitles: len(scan.Subtitles),
		Ignored:   scan.Ignored,
	}

	if !scan.Balanced() {
		if s.strict {
			return nil, types.ErrCountMismatch{Videos: p.Videos, Subtitles: p.Subtitles}
		}
		p.SurplusVideos, p.SurplusSubtitles = matcher.Surplus(scan.Videos, scan.Subtitles)
		s.emit(EventWarning, "Count mismatch: %d videos, %d subtitles; unpaired files are left alone", p.Videos, p.Subtitles)
		for _, f := range p.SurplusVideos {
			s.emit(EventWarning, "No subtitle: %s", f.Name)
		}
		for _, f := range p.SurplusSubtitles {
			s.emit(EventWarning, "No video: %s", f.Name)
		}
	}

	var resolve matcher.ResolveFunc
	if s.language {
		resolve = s.resolver(t)
	}
	p.Operations = matcher.Match(scan.Videos, scan.Subtitles, resolve)

	// Unpaired subtitles stay on disk and can be overwritten.
	unpaired := make([]string, len(p.SurplusSubtitles))
	for i, f := range p.SurplusSubtitles {
		unpaired[i] = f.Path
	}
	p.Collisions = matcher.Collisions(p.Operations, unpaired...)
	for _, c := range p.Collisions {
		s.emit(EventWarning, "Collision: %s (%s, entries %s)", c.Target, c.Kind, joinIndexes(c.Indexes))
	}
	return p, nil
}

func (s session) resolver(t Transport) matcher.ResolveFunc {
	r := language.Resolver{Detect: s.detect, Normalize: s.normalize}
	return func(sub types.MediaFile) language.Result {
		res := r.Resolve(sub.Name, func() ([]byte, error) {
			data, err := t.ReadFile(sub.Path, s.maxBytes)
			if err != nil {
				s.logger.Debug("Language detection skipped", "file", sub.Name, "error", err)
			}
			return data, err
		})
		s.logger.Debug("Resolved language", "file", sub.Name, "tag", res.Tag, "source", res.Source)
		return res
	}
}

// Apply executes a plan produced by Plan. Only the dry-run, event and
// logger options are used.
func Apply(ctx context.Context, t Transport, p *RenamePlan, opts ...Option) (*Report, error) {
	return newSession(opts).apply(ctx, t, p)
}

func (s session) apply(ctx context.Context, t Transport, p *RenamePlan) (*Report, error) {
	var ropts []renamer.Option
	if s.dryRun {
		ropts = append(ropts, renamer.WithDryRun())
	}
	ropts = append(ropts, renamer.WithEvents(s.events), renamer.WithLogger(s.logger))

	report, err := renamer.New(t, ropts...).Execute(ctx, p.Operations)
	if err != nil {
		return report, err
	}
	if !report.DryRun {
		s.emit(EventSuccess, "Done: %d of %d subtitles renamed", report.Renamed(), len(report.Operations))
	}
	return report, nil
}

// Rename plans dir and executes the plan in one step.
func Rename(ctx context.Context, t Transport, dir string, opts ...Option) (*Report, error) {
	s := newSession(opts)
	p, err := s.plan(ctx, t, dir)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, t, p)
}

// Open parses target (a local path or an sftp:// URL) and opens a
// transport for it. remote supplies connection defaults for URLs. The
// returned directory is the one to pass to Plan or Rename.
func Open(ctx context.Context, target string, remote types.RemoteConfig) (Transport, string, error) {
	tg, err := transport.ParseTarget(target, remote)
	if err != nil {
		return nil, "", err
	}
	return OpenTarget(ctx, tg)
}

// OpenTarget opens a transport for an already parsed target.
func OpenTarget(ctx context.Context, tg transport.Target) (Transport, string, error) {
	t, err := transport.Open(ctx, tg)
	if err != nil {
		return nil, "", err
	}
	return t, tg.Dir, nil
}

func joinIndexes(idx []int) string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = fmt.Sprintf("#%d", n+1)
	}
	return strings.Join(parts, ", ")
}
