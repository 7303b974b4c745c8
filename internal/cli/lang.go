package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mydehq/subrename/internal/language"
	"github.com/mydehq/subrename/internal/media"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/types"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
)

func newLangCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lang <file>...",
		Short: "Show the language tag resolved for subtitle files",
		Long:  "Resolves the language of each local subtitle file the same way a rename would: from the file name first, then from its text.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			local := transport.Local{}
			r := language.Resolver{Detect: a.cfg.Language.Detect, Normalize: a.cfg.Language.Normalize}

			for _, p := range args {
				name := filepath.Base(p)
				if media.Classify(name) != types.Subtitle {
					a.logger.Warn("Not a subtitle file", "file", p)
					continue
				}

				res := r.Resolve(name, func() ([]byte, error) {
					return local.ReadFile(p, a.cfg.Language.MaxBytes)
				})
				if res.Tag == "" {
					fmt.Fprintf(out, "%s %s\n", ui.StylePath.Render(name), ui.StyleDim.Render("no language"))
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n",
					ui.StylePath.Render(name),
					ui.StyleLang.Render(res.Tag),
					ui.StyleDim.Render("("+res.Source.String()+")"),
				)
			}
			return nil
		},
	}
}
