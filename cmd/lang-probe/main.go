// Command lang-probe prints the language resolved for every subtitle under
// a directory tree, to check the filename patterns and detection thresholds
// against a real media library.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mydehq/subrename/internal/language"
	"github.com/mydehq/subrename/internal/media"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
)

const maxBytes = 1 << 20

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	local := transport.Local{}
	resolver := language.Resolver{Detect: true}
	counts := make(map[types.LanguageSource]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || media.Classify(d.Name()) != types.Subtitle {
			return nil
		}

		res := resolver.Resolve(d.Name(), func() ([]byte, error) {
			return local.ReadFile(path, maxBytes)
		})
		counts[res.Source]++

		if res.Tag == "" {
			fmt.Printf("File: %s\nLANG: -\n\n", path)
			return nil
		}
		fmt.Printf("File: %s\nLANG: %s (%s, canonical %s)\n\n", path, res.Tag, res.Source, language.Canonical(res.Tag))
		return nil
	})

	if err != nil {
		fmt.Printf("Error walking path: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("filename: %d, content: %d, unresolved: %d\n",
		counts[types.LanguageFilename], counts[types.LanguageContent], counts[types.LanguageNone])
}
