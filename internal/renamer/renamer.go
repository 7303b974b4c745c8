// Package renamer applies a rename plan through a transport.
package renamer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

// Renamer executes rename plans. A failed rename stops the run; renames
// that already happened are not rolled back.
type Renamer struct {
	t      transport.Transport
	dryRun bool
	events func(types.Event)
	logger *log.Logger
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithDryRun reports the plan without renaming anything.
func WithDryRun() Option {
	return func(r *Renamer) { r.dryRun = true }
}

// WithEvents sets the progress callback.
func WithEvents(fn func(types.Event)) Option {
	return func(r *Renamer) { r.events = fn }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Renamer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Renamer that renames through t.
func New(t transport.Transport, opts ...Option) *Renamer {
	r := &Renamer{
		t:      t,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renamer) emit(typ types.EventType, msg string) {
	if r.events != nil {
		r.events(types.Event{Type: typ, Message: msg})
	}
}

// Execute runs plan in order and returns the report. The plan itself is
// not modified; the report holds copies of its entries with their final
// status.
//
// On failure the report is returned together with an ErrRename for the
// failed entry, or with ctx.Err() when the context was cancelled between
// entries.
func (r *Renamer) Execute(ctx context.Context, plan []types.RenameOperation) (*types.Report, error) {
	report := &types.Report{
		DryRun:     r.dryRun,
		Operations: make([]types.RenameOperation, len(plan)),
	}
	copy(report.Operations, plan)
	ops := report.Operations

	if r.dryRun {
		for i := range ops {
			ops[i].Status = types.StatusDryRun
			r.emit(types.EventInfo, fmt.Sprintf("Would rename: %s → %s", ops[i].SourcePath, ops[i].TargetPath))
		}
		return report, nil
	}

	for i := range ops {
		if err := ctx.Err(); err != nil {
			markNotRun(ops[i:])
			return report, err
		}

		op := &ops[i]
		if op.NoOp() {
			op.Status = types.StatusUnchanged
			r.logger.Debug("Skipping unchanged subtitle", "path", op.SourcePath)
			r.emit(types.EventInfo, fmt.Sprintf("Unchanged: %s", op.SourcePath))
			continue
		}

		r.logger.Debug("Renaming", "index", op.Index, "from", op.SourcePath, "to", op.TargetPath, "transport", r.t.Name())
		if err := r.t.Rename(op.SourcePath, op.TargetPath); err != nil {
			op.Status = types.StatusFailed
			op.Err = err
			markNotRun(ops[i+1:])

			renameErr := types.ErrRename{Index: op.Index, Source: op.SourcePath, Target: op.TargetPath, Err: err}
			r.emit(types.EventError, renameErr.Error())
			return report, renameErr
		}

		op.Status = types.StatusRenamed
		r.emit(types.EventSuccess, fmt.Sprintf("Renamed: %s → %s", op.SourcePath, op.TargetPath))
	}

	return report, nil
}

func markNotRun(ops []types.RenameOperation) {
	for i := range ops {
		ops[i].Status = types.StatusNotRun
	}
}
