package cli

import (
	"fmt"
	"io"

	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [target]",
		Short: "List the videos and subtitles of a directory",
		Long:  "Scans the target directory and prints the videos and subtitles in the order they would be paired. Nothing is renamed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tg, _, err := a.resolveTarget(cmd, args)
			if err != nil {
				return err
			}
			t, err := a.open(cmd.Context(), tg)
			if err != nil {
				return quietQuit(a, err)
			}
			defer t.Close()

			return a.printScan(cmd.OutOrStdout(), t, tg.Dir)
		},
	}
}

func (a *app) printScan(out io.Writer, t subrename.Transport, dir string) error {
	result, err := config.Scan(t, dir)
	if err != nil {
		return err
	}

	if !result.HasMedia() {
		fmt.Fprintf(out, "No media files found in: %s\n", ui.StylePath.Render(dir))
		return nil
	}

	fmt.Fprintf(out, "%s in: %s\n", ui.StyleLabel.Render("Scanned"), ui.StylePath.Render(dir))
	fmt.Fprintln(out, ui.ScanTable(result.Videos, result.Subtitles))
	fmt.Fprintf(out, " %s %d videos, %d subtitles, %d other files\n",
		ui.StyleDim.Render("-"), len(result.Videos), len(result.Subtitles), len(result.Ignored))

	if !result.Balanced() {
		a.logger.Warn("Video and subtitle counts differ; unpaired files will be left alone",
			"videos", len(result.Videos), "subtitles", len(result.Subtitles))
	}
	return nil
}
