package language

import (
	"regexp"
	"strings"
)

// Longer codes come first so "zh-cn" is not read as "zh".
const codeAlternation = `zh-hans|zh-hant|zh-cn|zh|eng|en|ja|jp|ko|kr|fr|de|es|it|ru`

// filenamePatterns are tried in order; the first match wins.
var filenamePatterns = []*regexp.Regexp{
	// Show.S01E01.zh.srt
	regexp.MustCompile(`(?i)\.(` + codeAlternation + `)\.[^.]+$`),
	// Show - 01 - en.srt, Show [en].srt. A bare stem such as It.srt is a
	// title, not a tag.
	regexp.MustCompile(`(?i)[-\s\[(](` + codeAlternation + `)[\])]?\.[^.]+$`),
	// Show_01_en.srt
	regexp.MustCompile(`(?i)_(` + codeAlternation + `)\.[^.]+$`),
}

// Codes returns the language codes recognized in file names.
func Codes() []string {
	return strings.Split(codeAlternation, "|")
}

// FromFilename extracts an embedded language code from a subtitle file
// name. The code is returned lower-cased.
func FromFilename(name string) (string, bool) {
	for _, re := range filenamePatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return strings.ToLower(m[1]), true
		}
	}
	return "", false
}
