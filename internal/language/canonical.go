package language

import (
	"strings"

	textlang "golang.org/x/text/language"
)

// Country codes that are commonly misused as language codes.
var aliases = map[string]string{
	"jp": "ja",
	"kr": "ko",
}

// Canonical maps a tag to its ISO 639-1 base ("eng" -> "en",
// "zh-hans" -> "zh"). Unknown tags are returned lower-cased.
func Canonical(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	if a, ok := aliases[t]; ok {
		return a
	}
	parsed, err := textlang.Parse(t)
	if err != nil {
		return t
	}
	base, conf := parsed.Base()
	if conf == textlang.No {
		return t
	}
	return base.String()
}
