// Package matcher pairs subtitles with videos and builds the rename plan.
//
// Both lists are sorted by file name and zipped position by position, so a
// directory whose subtitles and videos do not sort into the same episode
// order will be mis-paired. Surplus files on either side are left alone.
package matcher

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mydehq/subrename/internal/language"
	"github.com/mydehq/subrename/internal/types"
)

// ResolveFunc resolves the language of a subtitle. It may be nil.
type ResolveFunc func(subtitle types.MediaFile) language.Result

// Sort returns a copy of files ordered by name using byte comparison.
func Sort(files []types.MediaFile) []types.MediaFile {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b types.MediaFile) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return sorted
}

// Match pairs the sorted subtitles with the sorted videos and returns one
// pending operation per pair. The inputs are not modified.
func Match(videos, subtitles []types.MediaFile, resolve ResolveFunc) []types.RenameOperation {
	sortedVideos := Sort(videos)
	sortedSubs := Sort(subtitles)

	n := min(len(sortedVideos), len(sortedSubs))
	ops := make([]types.RenameOperation, 0, n)
	for i := 0; i < n; i++ {
		video, sub := sortedVideos[i], sortedSubs[i]

		var res language.Result
		if resolve != nil {
			res = resolve(sub)
		}

		ops = append(ops, types.RenameOperation{
			Index:          i,
			SourcePath:     sub.Path,
			TargetPath:     siblingPath(sub, TargetName(video, sub, res.Tag)),
			VideoPath:      video.Path,
			Language:       res.Tag,
			LanguageSource: res.Source,
			Status:         types.StatusPending,
		})
	}
	return ops
}

// TargetName builds the new subtitle name: the video's stem, the language
// tag when there is one, and the subtitle's own extension as written.
func TargetName(video, subtitle types.MediaFile, tag string) string {
	parts := []string{video.BaseName}
	if tag != "" {
		parts = append(parts, tag)
	}
	if ext := originalExtension(subtitle.Name); ext != "" {
		parts = append(parts, ext)
	}
	return strings.Join(parts, ".")
}

// Surplus returns the sorted videos and subtitles that Match leaves
// unpaired.
func Surplus(videos, subtitles []types.MediaFile) (extraVideos, extraSubtitles []types.MediaFile) {
	n := min(len(videos), len(subtitles))
	return Sort(videos)[n:], Sort(subtitles)[n:]
}

func originalExtension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// siblingPath replaces the final element of f.Path with name, keeping the
// transport's own separator.
func siblingPath(f types.MediaFile, name string) string {
	if strings.HasSuffix(f.Path, f.Name) {
		return f.Path[:len(f.Path)-len(f.Name)] + name
	}
	return filepath.Join(filepath.Dir(f.Path), name)
}
