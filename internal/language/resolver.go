// Package language resolves the language tag of a subtitle file, first
// from its name and then, if allowed, from its text.
package language

import "github.com/mydehq/subrename/internal/types"

// Loader returns the raw content of a subtitle file.
type Loader func() ([]byte, error)

// Result is the outcome of resolving a subtitle's language. An empty Tag
// means no opinion.
type Result struct {
	Tag    string
	Source types.LanguageSource
}

// Resolver resolves language tags. The zero value only inspects names.
type Resolver struct {
	Detect    bool // Fall back to content detection
	Normalize bool // Return Canonical tags
}

// Resolve inspects name first; the loader is called only when the name
// carries no recognized code and detection is enabled. Loader failures and
// undecodable content yield an empty Result.
func (r Resolver) Resolve(name string, load Loader) Result {
	if tag, ok := FromFilename(name); ok {
		return Result{Tag: r.finish(tag), Source: types.LanguageFilename}
	}
	if !r.Detect || load == nil {
		return Result{}
	}

	data, err := load()
	if err != nil {
		return Result{}
	}
	text, ok := Decode(data)
	if !ok {
		return Result{}
	}
	if tag := Detect(text); tag != "" {
		return Result{Tag: r.finish(tag), Source: types.LanguageContent}
	}
	return Result{}
}

func (r Resolver) finish(tag string) string {
	if r.Normalize {
		return Canonical(tag)
	}
	return tag
}

// Resolve resolves with content detection enabled and tags kept as written.
func Resolve(name string, load Loader) Result {
	return Resolver{Detect: true}.Resolve(name, load)
}
