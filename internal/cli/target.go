package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mydehq/subrename"
	"github.com/mydehq/subrename/internal/transport"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
)

// resolveTarget combines the positional target, --dir and the remote flags.
// dirGiven reports whether the user named a directory at all.
func (a *app) resolveTarget(cmd *cobra.Command, args []string) (tg transport.Target, dirGiven bool, err error) {
	raw := a.flags.dir
	if len(args) > 0 {
		raw = args[0]
	}
	dirGiven = len(args) > 0 || cmd.Flags().Changed("dir")

	if a.flags.ssh || a.flags.remoteDir != "" {
		dir := a.flags.remoteDir
		if dir == "" && dirGiven {
			dir = raw
		}
		return transport.RemoteTarget(dir, a.cfg.Remote), dir != "", nil
	}

	tg, err = transport.ParseTarget(raw, a.cfg.Remote)
	if err != nil {
		return transport.Target{}, false, err
	}
	if tg.IsRemote() {
		dirGiven = tg.Dir != "."
	}
	return tg, dirGiven, nil
}

// open connects to tg, asking for a missing SSH user on a terminal.
func (a *app) open(ctx context.Context, tg transport.Target) (subrename.Transport, error) {
	if tg.IsRemote() {
		if tg.Remote.User == "" && a.interactive() {
			user, err := ui.PromptUser(tg.Remote.Address())
			if err != nil {
				return nil, err
			}
			tg.Remote.User = user
		}
		a.logger.Info("Connecting", "target", tg.String())
	}

	t, _, err := subrename.OpenTarget(ctx, tg)
	if err != nil {
		return nil, err
	}
	if tg.IsRemote() {
		a.logger.Info("Connected", "target", tg.String())
	}
	return t, nil
}

// options translates the effective configuration into library options.
func (a *app) options(extra ...subrename.Option) []subrename.Option {
	opts := []subrename.Option{
		subrename.WithConfig(a.cfg),
		subrename.WithLogger(a.logger),
	}
	return append(opts, extra...)
}

// interactive reports whether prompts may be shown.
func (a *app) interactive() bool {
	return a.stdin != nil && isTerminal(a.stdin)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
