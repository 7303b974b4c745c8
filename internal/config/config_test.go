package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := GetDefaults()
	if cfg.Remote != want.Remote || cfg.Language != want.Language || cfg.Strict || cfg.DryRun {
		t.Errorf("Load() = %+v; want defaults", cfg)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `strict: true
language:
  normalize: true
remote:
  host: nas.lan
  user: media
  timeout: 30s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Strict {
		t.Error("Strict = false; want true")
	}
	if !cfg.Language.Normalize || !cfg.Language.Enabled || !cfg.Language.Detect {
		t.Errorf("Language = %+v", cfg.Language)
	}
	if cfg.Remote.Host != "nas.lan" || cfg.Remote.User != "media" || cfg.Remote.Port != 22 {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
	if cfg.Remote.Timeout != 30*time.Second {
		t.Errorf("Remote.Timeout = %v; want 30s", cfg.Remote.Timeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed YAML", "strict: [unclosed"},
		{"Port out of range", "remote:\n  port: 70000\n"},
		{"Negative retries", "remote:\n  dial_retries: -1\n"},
		{"Zero read limit", "language:\n  max_bytes: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if types.KindOf(err) != types.KindConfig {
				t.Errorf("Load() error = %v; want config error", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := GetDefaults()
	cfg.Remote.Host = "nas.lan"
	cfg.Remote.DialRetries = 3

	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o; want 600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Remote != cfg.Remote {
		t.Errorf("Remote = %+v; want %+v", loaded.Remote, cfg.Remote)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"b.mkv", "a.MP4", "2.srt", "1.ASS", "notes.txt", "README"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "extras.mkv"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Scan(transport.Local{}, dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	fileNames := func(files []types.MediaFile) []string {
		var out []string
		for _, f := range files {
			out = append(out, f.Name)
		}
		return out
	}

	if got := fileNames(result.Videos); !slices.Equal(got, []string{"a.MP4", "b.mkv"}) {
		t.Errorf("Videos = %v", got)
	}
	if got := fileNames(result.Subtitles); !slices.Equal(got, []string{"1.ASS", "2.srt"}) {
		t.Errorf("Subtitles = %v", got)
	}
	slices.Sort(result.Ignored)
	if !slices.Equal(result.Ignored, []string{"README", "notes.txt"}) {
		t.Errorf("Ignored = %v", result.Ignored)
	}
	if result.TotalFiles != 6 {
		t.Errorf("TotalFiles = %d; want 6", result.TotalFiles)
	}
	if !result.HasMedia() || !result.Balanced() {
		t.Errorf("HasMedia() = %v, Balanced() = %v", result.HasMedia(), result.Balanced())
	}
	if want := filepath.Join(dir, "a.MP4"); result.Videos[0].Path != want {
		t.Errorf("Videos[0].Path = %q; want %q", result.Videos[0].Path, want)
	}
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(transport.Local{}, filepath.Join(t.TempDir(), "missing"))
	if types.KindOf(err) != types.KindTransport {
		t.Errorf("Scan() error = %v; want transport error", err)
	}
}
