// Package media classifies directory entries as videos or subtitles by
// their file extension.
package media

import (
	"slices"
	"strings"

	"github.com/mydehq/subrename/internal/types"
)

var videoExtensions = map[string]bool{
	"mp4":  true,
	"mkv":  true,
	"avi":  true,
	"mov":  true,
	"wmv":  true,
	"flv":  true,
	"webm": true,
	"3gp":  true,
	"m4v":  true,
	"hevc": true,
}

var subtitleExtensions = map[string]bool{
	"srt":     true,
	"ass":     true,
	"ssa":     true,
	"vtt":     true,
	"sub":     true,
	"idx":     true,
	"dfxp":    true,
	"ttml":    true,
	"eia-608": true,
	"smi":     true,
	"cpt":     true,
	"mks":     true,
}

// Extension returns the lower-cased text after the final dot of name, or
// "" when there is none.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Stem returns name without its final extension.
func Stem(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// Classify categorizes a file name by its extension.
func Classify(name string) types.Category {
	ext := Extension(name)
	switch {
	case ext == "":
		return types.Unclassified
	case videoExtensions[ext]:
		return types.Video
	case subtitleExtensions[ext]:
		return types.Subtitle
	default:
		return types.Unclassified
	}
}

// NewFile builds a MediaFile for the entry called name at fullPath.
func NewFile(fullPath, name string) types.MediaFile {
	return types.MediaFile{
		Path:      fullPath,
		Name:      name,
		BaseName:  Stem(name),
		Extension: Extension(name),
		Category:  Classify(name),
	}
}

// VideoExtensions returns the recognized video extensions, sorted.
func VideoExtensions() []string {
	return sortedKeys(videoExtensions)
}

// SubtitleExtensions returns the recognized subtitle extensions, sorted.
func SubtitleExtensions() []string {
	return sortedKeys(subtitleExtensions)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
