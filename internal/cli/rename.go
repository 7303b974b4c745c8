package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
)

func (a *app) runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tg, dirGiven, err := a.resolveTarget(cmd, args)
	if err != nil {
		return err
	}

	t, err := a.open(ctx, tg)
	if err != nil {
		return quietQuit(a, err)
	}
	defer t.Close()

	out := cmd.OutOrStdout()

	// A remote session without a directory becomes an interactive menu.
	if tg.IsRemote() && !dirGiven && a.interactive() {
		return ui.RunRemoteMenu(tg.String(), ui.RemoteHandlers{
			Scan: func(dir string) error {
				return a.printScan(out, t, dir)
			},
			Rename: func(dir string, dryRun bool) error {
				return a.renameDir(ctx, out, t, dir, dryRun, false)
			},
		})
	}

	return quietQuit(a, a.renameDir(ctx, out, t, tg.Dir, a.cfg.DryRun, a.flags.yes))
}

// renameDir plans dir, shows the plan and applies it. Live runs on a
// terminal ask first unless skipConfirm is set.
func (a *app) renameDir(ctx context.Context, out io.Writer, t subrename.Transport, dir string, dryRun, skipConfirm bool) error {
	plan, err := subrename.Plan(ctx, t, dir, a.options(subrename.WithEvents(a.planEvents(out)))...)
	if err != nil {
		return err
	}

	if len(plan.Operations) == 0 {
		fmt.Fprintf(out, "Nothing to rename in: %s\n", ui.StylePath.Render(dir))
		return nil
	}

	if dryRun {
		report, err := subrename.Apply(ctx, t, plan, subrename.WithDryRun(), subrename.WithLogger(a.logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.StyleAlert.Render("[DRY RUN]"))
		fmt.Fprintln(out, ui.PlanTable(report.Operations))
		return nil
	}

	pending := plan.Pending()
	if pending == 0 {
		fmt.Fprintf(out, "%s all %d subtitles already match their videos\n", ui.StyleLabel.Render("Up to date:"), len(plan.Operations))
		return nil
	}

	if !skipConfirm && a.interactive() {
		fmt.Fprintln(out, ui.PlanTable(plan.Operations))
		ok, err := ui.ConfirmRename(dir, pending)
		if err != nil {
			return err
		}
		if !ok {
			a.logger.Info(ui.StyleDim.Render("Rename cancelled"))
			return nil
		}
	}

	report, err := subrename.Apply(ctx, t, plan,
		subrename.WithEvents(a.applyEvents(out)),
		subrename.WithLogger(a.logger),
	)
	if err != nil {
		if report != nil {
			fmt.Fprintln(out, ui.PlanTable(report.Operations))
		}
		return err
	}
	return nil
}

// planEvents prints scan summaries and logs planning warnings.
func (a *app) planEvents(out io.Writer) func(subrename.Event) {
	return func(e subrename.Event) {
		switch e.Type {
		case subrename.EventWarning:
			a.logger.Warn(e.Message)
		case subrename.EventError:
			a.logger.Error(e.Message)
		default:
			fmt.Fprintln(out, ui.ColorizeEvent(e.Message))
		}
	}
}

// applyEvents prints rename progress. Errors are reported by the caller.
func (a *app) applyEvents(out io.Writer) func(subrename.Event) {
	return func(e subrename.Event) {
		switch e.Type {
		case subrename.EventError:
		case subrename.EventWarning:
			a.logger.Warn(e.Message)
		default:
			fmt.Fprintln(out, ui.ColorizeEvent(displayNames(e.Message)))
		}
	}
}

// quietQuit turns a ctrl+c in a prompt into a clean exit.
func quietQuit(a *app, err error) error {
	if errors.Is(err, ui.ErrUserQuit) || errors.Is(err, ui.ErrUserBack) {
		a.logger.Info(ui.StyleDim.Render("Cancelled"))
		return nil
	}
	return err
}

// displayNames shortens the paths of a "Label: old → new" message to
// file names.
func displayNames(msg string) string {
	label, rest, ok := strings.Cut(msg, ": ")
	if !ok {
		return msg
	}
	from, to, ok := strings.Cut(rest, " → ")
	if !ok {
		return msg
	}
	return label + ": " + ui.BaseName(from) + " → " + ui.BaseName(to)
}
