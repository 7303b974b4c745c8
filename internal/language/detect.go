package language

import "strings"

const (
	zhThreshold = 0.10
	enThreshold = 0.30
)

// Detect guesses the language of subtitle text. Cue numbers, timing lines
// and blank lines are ignored. It returns "zh", "en" or "" when neither
// script is dominant enough to decide.
func Detect(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "-->") || isASCIIDigits(line) {
			continue
		}
		b.WriteString(line)
	}

	var total, ascii, cjk int
	for _, r := range b.String() {
		total++
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			ascii++
		case isCJK(r):
			cjk++
		}
	}
	if ascii+cjk == 0 {
		return ""
	}

	zhRatio := float64(cjk) / float64(total)
	enRatio := float64(ascii) / float64(total)
	switch {
	case zhRatio > zhThreshold:
		return "zh"
	case enRatio > enThreshold:
		return "en"
	default:
		return ""
	}
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF)
}
