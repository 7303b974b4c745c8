package renamer

import (
	"context"
	"errors"
	"os"
	"path"
	"slices"
	"testing"

	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

// fakeTransport is an in-memory transport keyed by full path.
type fakeTransport struct {
	files   map[string]bool
	renames [][2]string
	failOn  string
}

func newFake(paths ...string) *fakeTransport {
	f := &fakeTransport{files: make(map[string]bool)}
	for _, p := range paths {
		f.files[p] = true
	}
	return f
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) List(dir string) ([]transport.Entry, error) {
	var entries []transport.Entry
	for p := range f.files {
		if path.Dir(p) == dir {
			entries = append(entries, transport.Entry{Name: path.Base(p), IsFile: true})
		}
	}
	return entries, nil
}

func (f *fakeTransport) Rename(oldPath, newPath string) error {
	if oldPath == f.failOn || !f.files[oldPath] {
		return os.ErrNotExist
	}
	delete(f.files, oldPath)
	f.files[newPath] = true
	f.renames = append(f.renames, [2]string{oldPath, newPath})
	return nil
}

func (f *fakeTransport) ReadFile(p string, limit int64) ([]byte, error) {
	return nil, os.ErrNotExist
}

func (f *fakeTransport) Join(dir, name string) string { return path.Join(dir, name) }

func (f *fakeTransport) Close() error { return nil }

func plan(pairs ...string) []types.RenameOperation {
	var ops []types.RenameOperation
	for i := 0; i+1 < len(pairs); i += 2 {
		ops = append(ops, types.RenameOperation{Index: i / 2, SourcePath: pairs[i], TargetPath: pairs[i+1]})
	}
	return ops
}

func statuses(r *types.Report) []types.OperationStatus {
	out := make([]types.OperationStatus, len(r.Operations))
	for i, op := range r.Operations {
		out[i] = op.Status
	}
	return out
}

func TestExecuteDryRun(t *testing.T) {
	ft := newFake("/d/a.srt", "/d/b.srt")
	var events []types.Event
	r := New(ft, WithDryRun(), WithEvents(func(e types.Event) { events = append(events, e) }))

	report, err := r.Execute(context.Background(), plan("/d/a.srt", "/d/e1.srt", "/d/b.srt", "/d/e2.srt"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !report.DryRun {
		t.Error("report.DryRun = false")
	}
	want := []types.OperationStatus{types.StatusDryRun, types.StatusDryRun}
	if got := statuses(report); !slices.Equal(got, want) {
		t.Errorf("statuses = %v; want %v", got, want)
	}
	if len(ft.renames) != 0 {
		t.Errorf("dry run renamed %v", ft.renames)
	}
	if len(events) != 2 {
		t.Errorf("got %d events; want 2", len(events))
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		failOn    string
		plan      []types.RenameOperation
		want      []types.OperationStatus
		wantErr   bool
		wantMoves int
	}{
		{
			name:      "All succeed",
			files:     []string{"/d/a.srt", "/d/b.srt"},
			plan:      plan("/d/a.srt", "/d/e1.srt", "/d/b.srt", "/d/e2.srt"),
			want:      []types.OperationStatus{types.StatusRenamed, types.StatusRenamed},
			wantMoves: 2,
		},
		{
			name:      "Missing source stops the run",
			files:     []string{"/d/a.srt", "/d/c.srt"},
			plan:      plan("/d/a.srt", "/d/e1.srt", "/d/b.srt", "/d/e2.srt", "/d/c.srt", "/d/e3.srt"),
			want:      []types.OperationStatus{types.StatusRenamed, types.StatusFailed, types.StatusNotRun},
			wantErr:   true,
			wantMoves: 1,
		},
		{
			name:      "Failure on first entry",
			files:     []string{"/d/a.srt"},
			failOn:    "/d/a.srt",
			plan:      plan("/d/a.srt", "/d/e1.srt"),
			want:      []types.OperationStatus{types.StatusFailed},
			wantErr:   true,
			wantMoves: 0,
		},
		{
			name:      "Source equals target",
			files:     []string{"/d/e1.srt", "/d/b.srt"},
			plan:      plan("/d/e1.srt", "/d/e1.srt", "/d/b.srt", "/d/e2.srt"),
			want:      []types.OperationStatus{types.StatusUnchanged, types.StatusRenamed},
			wantMoves: 1,
		},
		{
			name: "Empty plan",
			want: []types.OperationStatus{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := newFake(tt.files...)
			ft.failOn = tt.failOn

			report, err := New(ft).Execute(context.Background(), tt.plan)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v; wantErr %v", err, tt.wantErr)
			}
			if got := statuses(report); !slices.Equal(got, tt.want) {
				t.Errorf("statuses = %v; want %v", got, tt.want)
			}
			if len(ft.renames) != tt.wantMoves {
				t.Errorf("renames = %v; want %d", ft.renames, tt.wantMoves)
			}
			if err != nil && types.KindOf(err) != types.KindRename {
				t.Errorf("KindOf(%v) = %v; want %v", err, types.KindOf(err), types.KindRename)
			}
		})
	}
}

func TestExecuteErrorContext(t *testing.T) {
	ft := newFake("/d/a.srt")
	p := plan("/d/a.srt", "/d/e1.srt", "/d/missing.srt", "/d/e2.srt")

	report, err := New(ft).Execute(context.Background(), p)

	var renameErr types.ErrRename
	if !errors.As(err, &renameErr) {
		t.Fatalf("Execute() error = %v; want ErrRename", err)
	}
	if renameErr.Index != 1 || renameErr.Source != "/d/missing.srt" || renameErr.Target != "/d/e2.srt" {
		t.Errorf("ErrRename = %+v", renameErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error does not wrap the transport cause: %v", err)
	}
	if failed := report.Failed(); failed == nil || failed.Index != 1 {
		t.Errorf("Failed() = %+v; want entry 1", failed)
	}
	if report.Renamed() != 1 {
		t.Errorf("Renamed() = %d; want 1", report.Renamed())
	}
	if p[0].Status != types.StatusPending {
		t.Errorf("plan was modified: %v", p[0].Status)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ft := newFake("/d/a.srt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(ft).Execute(ctx, plan("/d/a.srt", "/d/e1.srt"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v; want context.Canceled", err)
	}
	if report.Operations[0].Status != types.StatusNotRun {
		t.Errorf("status = %v; want %v", report.Operations[0].Status, types.StatusNotRun)
	}
	if len(ft.renames) != 0 {
		t.Errorf("renamed after cancel: %v", ft.renames)
	}
}

func TestExecuteEvents(t *testing.T) {
	ft := newFake("/d/a.srt")
	var got []types.Event
	r := New(ft, WithEvents(func(e types.Event) { got = append(got, e) }))

	if _, err := r.Execute(context.Background(), plan("/d/a.srt", "/d/e1.srt")); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events; want 1", len(got))
	}
	if got[0].Type != types.EventSuccess || got[0].Message != "Renamed: /d/a.srt → /d/e1.srt" {
		t.Errorf("event = %+v", got[0])
	}
}
