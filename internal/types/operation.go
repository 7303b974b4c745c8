package types

// OperationStatus is the state of a single rename in a plan.
type OperationStatus int

const (
	StatusPending OperationStatus = iota
	StatusDryRun
	StatusRenamed
	StatusUnchanged // source already equals target
	StatusFailed
	StatusNotRun // skipped because an earlier entry failed
)

func (s OperationStatus) String() string {
	switch s {
	case StatusDryRun:
		return "dry-run"
	case StatusRenamed:
		return "renamed"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	case StatusNotRun:
		return "not run"
	default:
		return "pending"
	}
}

// LanguageSource records where a language tag came from.
type LanguageSource int

const (
	LanguageNone LanguageSource = iota
	LanguageFilename
	LanguageContent
)

func (s LanguageSource) String() string {
	switch s {
	case LanguageFilename:
		return "filename"
	case LanguageContent:
		return "content"
	default:
		return "none"
	}
}

// RenameOperation is one entry of a rename plan.
type RenameOperation struct {
	Index          int
	SourcePath     string
	TargetPath     string
	VideoPath      string // Video the subtitle was paired with
	Language       string // Empty when no tag was resolved
	LanguageSource LanguageSource
	Status         OperationStatus
	Err            error
}

// NoOp reports whether the operation would rename a file onto itself.
func (op RenameOperation) NoOp() bool {
	return op.SourcePath == op.TargetPath
}

// Report is the outcome of executing a plan.
type Report struct {
	DryRun     bool
	Operations []RenameOperation
}

// Renamed returns the number of operations that changed a file name.
func (r *Report) Renamed() int {
	n := 0
	for _, op := range r.Operations {
		if op.Status == StatusRenamed {
			n++
		}
	}
	return n
}

// Failed returns the failed operation, if any.
func (r *Report) Failed() *RenameOperation {
	for i := range r.Operations {
		if r.Operations[i].Status == StatusFailed {
			return &r.Operations[i]
		}
	}
	return nil
}

// EventType classifies progress events.
type EventType int

const (
	EventInfo EventType = iota
	EventWarning
	EventSuccess
	EventError
)

// Event is a progress notification emitted while planning or renaming.
type Event struct {
	Type    EventType
	Message string
}
