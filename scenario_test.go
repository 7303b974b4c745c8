package subrename_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/matcher"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
	"github.com/pkg/sftp"
)

const (
	chineseSRT = "1\n00:00:01,000 --> 00:00:02,000\n你好，世界。今天天气很好。\n"
	englishSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello there, how are you today?\n"
)

// setupDir creates files (name → content) in a fresh temp directory.
func setupDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	slices.Sort(out)
	return out
}

func collect(events *[]subrename.Event) subrename.Option {
	return subrename.WithEvents(func(e subrename.Event) { *events = append(*events, e) })
}

func hasEvent(events []subrename.Event, typ subrename.EventType, substr string) bool {
	return slices.ContainsFunc(events, func(e subrename.Event) bool {
		return e.Type == typ && strings.Contains(e.Message, substr)
	})
}

func TestScenario_Local(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		opts  []subrename.Option
		want  []string
	}{
		{
			name: "Tags from filenames",
			files: map[string]string{
				"Show - 01.mkv":            "",
				"Show - 02.mkv":            "",
				"[Group] Show 01 [en].ass": "",
				"[Group] Show 02.zh.srt":   "",
			},
			want: []string{"Show - 01.en.ass", "Show - 01.mkv", "Show - 02.mkv", "Show - 02.zh.srt"},
		},
		{
			name: "Sorted pairing without tags",
			files: map[string]string{
				"b.mp4": "", "a.mkv": "",
				"y.srt": englishSRT, "x.ass": chineseSRT,
			},
			opts: []subrename.Option{subrename.WithoutLanguage()},
			want: []string{"a.ass", "a.mkv", "b.mp4", "b.srt"},
		},
		{
			name: "Tags from content",
			files: map[string]string{
				"e1.mkv": "", "e2.mkv": "", "e3.mkv": "",
				"s1.srt": chineseSRT, "s2.srt": englishSRT, "s3.srt": "1\n00:00:01,000 --> 00:00:02,000\n12345 ... !!!\n",
			},
			want: []string{"e1.mkv", "e1.zh.srt", "e2.en.srt", "e2.mkv", "e3.mkv", "e3.srt"},
		},
		{
			name: "Detection disabled",
			files: map[string]string{
				"e1.mkv": "", "s1.srt": chineseSRT,
			},
			opts: []subrename.Option{subrename.WithoutDetection()},
			want: []string{"e1.mkv", "e1.srt"},
		},
		{
			name: "Normalized tags",
			files: map[string]string{
				"e1.mkv": "", "e2.mkv": "",
				"s1.eng.srt": "", "s2_jp.ass": "",
			},
			opts: []subrename.Option{subrename.WithNormalize()},
			want: []string{"e1.en.srt", "e1.mkv", "e2.ja.ass", "e2.mkv"},
		},
		{
			name: "Extension case preserved",
			files: map[string]string{
				"Movie.MKV": "", "movie.SRT": "",
			},
			opts: []subrename.Option{subrename.WithoutLanguage()},
			want: []string{"Movie.MKV", "Movie.SRT"},
		},
		{
			name: "Unclassified files are untouched",
			files: map[string]string{
				"e1.mkv": "", "s1.srt": "", "notes.txt": "", "cover.jpg": "",
			},
			opts: []subrename.Option{subrename.WithoutLanguage()},
			want: []string{"cover.jpg", "e1.mkv", "e1.srt", "notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupDir(t, tt.files)

			if _, err := subrename.Rename(context.Background(), transport.Local{}, dir, tt.opts...); err != nil {
				t.Fatalf("Rename() error = %v", err)
			}
			if got := listDir(t, dir); !slices.Equal(got, tt.want) {
				t.Errorf("directory = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestScenario_DryRun(t *testing.T) {
	files := map[string]string{"e1.mkv": "", "e2.mkv": "", "a.srt": "", "b.srt": ""}
	dir := setupDir(t, files)
	before := listDir(t, dir)

	var events []subrename.Event
	report, err := subrename.Rename(context.Background(), transport.Local{}, dir, subrename.WithDryRun(), collect(&events))
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if !report.DryRun || len(report.Operations) != 2 {
		t.Fatalf("report = %+v", report)
	}
	for _, op := range report.Operations {
		if op.Status != types.StatusDryRun {
			t.Errorf("status = %v; want %v", op.Status, types.StatusDryRun)
		}
	}
	if got := listDir(t, dir); !slices.Equal(got, before) {
		t.Errorf("dry run changed directory: %v", got)
	}
	if !hasEvent(events, subrename.EventInfo, "Would rename") {
		t.Errorf("no dry-run events in %v", events)
	}
}

func TestScenario_Surplus(t *testing.T) {
	dir := setupDir(t, map[string]string{"e1.mkv": "", "e2.mkv": "", "e3.mkv": "", "a.srt": "", "b.srt": ""})

	var events []subrename.Event
	report, err := subrename.Rename(context.Background(), transport.Local{}, dir, subrename.WithoutLanguage(), collect(&events))
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if len(report.Operations) != 2 {
		t.Errorf("got %d operations; want 2", len(report.Operations))
	}
	want := []string{"e1.mkv", "e1.srt", "e2.mkv", "e2.srt", "e3.mkv"}
	if got := listDir(t, dir); !slices.Equal(got, want) {
		t.Errorf("directory = %v; want %v", got, want)
	}
	if !hasEvent(events, subrename.EventWarning, "No subtitle: e3.mkv") {
		t.Errorf("missing surplus warning in %v", events)
	}
}

func TestScenario_Strict(t *testing.T) {
	dir := setupDir(t, map[string]string{"e1.mkv": "", "e2.mkv": "", "a.srt": ""})
	before := listDir(t, dir)

	_, err := subrename.Rename(context.Background(), transport.Local{}, dir, subrename.WithStrict())

	var mismatch types.ErrCountMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Rename() error = %v; want ErrCountMismatch", err)
	}
	if mismatch.Videos != 2 || mismatch.Subtitles != 1 {
		t.Errorf("ErrCountMismatch = %+v", mismatch)
	}
	if got := listDir(t, dir); !slices.Equal(got, before) {
		t.Errorf("strict failure changed directory: %v", got)
	}
}

func TestScenario_Idempotent(t *testing.T) {
	dir := setupDir(t, map[string]string{"e1.mkv": "", "e2.mkv": "", "a.en.srt": "", "b.en.srt": ""})
	ctx := context.Background()

	if _, err := subrename.Rename(ctx, transport.Local{}, dir); err != nil {
		t.Fatalf("first Rename() error = %v", err)
	}
	first := listDir(t, dir)

	report, err := subrename.Rename(ctx, transport.Local{}, dir)
	if err != nil {
		t.Fatalf("second Rename() error = %v", err)
	}
	for _, op := range report.Operations {
		if op.Status != types.StatusUnchanged {
			t.Errorf("%s: status = %v; want %v", op.SourcePath, op.Status, types.StatusUnchanged)
		}
	}
	if got := listDir(t, dir); !slices.Equal(got, first) {
		t.Errorf("second run changed directory: %v; want %v", got, first)
	}
}

func TestScenario_Collision(t *testing.T) {
	dir := setupDir(t, map[string]string{"ep1.mkv": "", "ep1.mp4": "", "a.srt": "", "b.srt": ""})

	var events []subrename.Event
	plan, err := subrename.Plan(context.Background(), transport.Local{}, dir, subrename.WithoutLanguage(), collect(&events))
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Operations) != 2 {
		t.Fatalf("got %d operations; want 2", len(plan.Operations))
	}
	if plan.Operations[0].TargetPath != plan.Operations[1].TargetPath {
		t.Errorf("targets differ: %s, %s", plan.Operations[0].TargetPath, plan.Operations[1].TargetPath)
	}
	if len(plan.Collisions) != 1 || !slices.Equal(plan.Collisions[0].Indexes, []int{0, 1}) {
		t.Errorf("Collisions = %+v", plan.Collisions)
	}
	if !hasEvent(events, subrename.EventWarning, "Collision") {
		t.Errorf("missing collision warning in %v", events)
	}
}

func TestScenario_CollisionWithUnpairedSubtitle(t *testing.T) {
	dir := setupDir(t, map[string]string{"b.mkv": "", "a.srt": "", "b.srt": ""})

	var events []subrename.Event
	plan, err := subrename.Plan(context.Background(), transport.Local{}, dir, subrename.WithoutLanguage(), collect(&events))
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Operations) != 1 || len(plan.SurplusSubtitles) != 1 {
		t.Fatalf("got %d operations, %d surplus subtitles; want 1, 1", len(plan.Operations), len(plan.SurplusSubtitles))
	}
	if len(plan.Collisions) != 1 || plan.Collisions[0].Kind != matcher.CollisionExisting {
		t.Fatalf("Collisions = %+v; want one existing-file overwrite", plan.Collisions)
	}
	if plan.Collisions[0].Target != filepath.Join(dir, "b.srt") {
		t.Errorf("Target = %q", plan.Collisions[0].Target)
	}
	if !hasEvent(events, subrename.EventWarning, "overwrites existing file") {
		t.Errorf("missing collision warning in %v", events)
	}
}

func TestScenario_FailFast(t *testing.T) {
	dir := setupDir(t, map[string]string{"e1.mkv": "", "e2.mkv": "", "e3.mkv": "", "a.srt": "", "b.srt": "", "c.srt": ""})
	ctx := context.Background()

	plan, err := subrename.Plan(ctx, transport.Local{}, dir, subrename.WithoutLanguage())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	// Remove the second source after planning.
	if err := os.Remove(filepath.Join(dir, "b.srt")); err != nil {
		t.Fatal(err)
	}

	report, err := subrename.Apply(ctx, transport.Local{}, plan)
	if types.KindOf(err) != types.KindRename {
		t.Fatalf("Apply() error = %v; want rename failure", err)
	}
	want := []types.OperationStatus{types.StatusRenamed, types.StatusFailed, types.StatusNotRun}
	for i, op := range report.Operations {
		if op.Status != want[i] {
			t.Errorf("operation %d: status = %v; want %v", i, op.Status, want[i])
		}
	}
	if got := listDir(t, dir); !slices.Equal(got, []string{"c.srt", "e1.mkv", "e1.srt", "e2.mkv", "e3.mkv"}) {
		t.Errorf("directory = %v", got)
	}
}

func TestScenario_MissingDir(t *testing.T) {
	_, err := subrename.Plan(context.Background(), transport.Local{}, filepath.Join(t.TempDir(), "missing"))
	if types.KindOf(err) != types.KindTransport {
		t.Errorf("Plan() error = %v; want transport failure", err)
	}
}

func TestScenario_SFTP(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	server := sftp.NewRequestServer(serverConn, sftp.InMemHandler())
	go server.Serve()

	client, err := sftp.NewClientPipe(clientConn, clientConn)
	if err != nil {
		t.Fatalf("NewClientPipe() error = %v", err)
	}
	tr := transport.NewSFTP(client)
	t.Cleanup(func() {
		tr.Close()
		server.Close()
	})

	if err := client.Mkdir("/media"); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"/media/Show 01.mkv": "", "/media/Show 02.mkv": "",
		"/media/sub1.srt": chineseSRT, "/media/sub2-en.srt": "",
	} {
		f, err := client.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	report, err := subrename.Rename(context.Background(), tr, "/media")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if report.Renamed() != 2 {
		t.Errorf("Renamed() = %d; want 2", report.Renamed())
	}
	for _, want := range []string{"/media/Show 01.zh.srt", "/media/Show 02.en.srt"} {
		if _, err := client.Stat(want); err != nil {
			t.Errorf("Stat(%s) error = %v", want, err)
		}
	}
}
