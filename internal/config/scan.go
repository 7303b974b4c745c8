package config

import (
	"github.com/mydehq/subrename/internal/matcher"
	"github.com/mydehq/subrename/internal/media"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

// ScanResult holds the results of directory scanning
type ScanResult struct {
	Dir        string
	Videos     []types.MediaFile // Sorted by name
	Subtitles  []types.MediaFile // Sorted by name
	Ignored    []string          // Files with no recognized extension
	TotalFiles int
}

// HasMedia reports whether anything renamable was found.
func (r *ScanResult) HasMedia() bool {
	return len(r.Videos) > 0 || len(r.Subtitles) > 0
}

// Balanced reports whether video and subtitle counts match.
func (r *ScanResult) Balanced() bool {
	return len(r.Videos) == len(r.Subtitles)
}

// Scan lists dir through t and classifies its files. Directories are
// skipped; nothing is read recursively.
func Scan(t transport.Transport, dir string) (*ScanResult, error) {
	entries, err := t.List(dir)
	if err != nil {
		return nil, types.ErrTransport{Op: "list", Path: dir, Err: err}
	}

	result := &ScanResult{Dir: dir}
	var videos, subtitles []types.MediaFile

	for _, e := range entries {
		if !e.IsFile {
			continue
		}
		result.TotalFiles++

		f := media.NewFile(t.Join(dir, e.Name), e.Name)
		switch f.Category {
		case types.Video:
			videos = append(videos, f)
		case types.Subtitle:
			subtitles = append(subtitles, f)
		default:
			result.Ignored = append(result.Ignored, e.Name)
		}
	}

	result.Videos = matcher.Sort(videos)
	result.Subtitles = matcher.Sort(subtitles)
	return result, nil
}
