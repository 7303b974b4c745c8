// Package cli implements the subrename command line.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/types"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
)

// rootFlags holds every flag of the command tree.
type rootFlags struct {
	configPath string
	verbose    bool
	dir        string

	dryRun    bool
	strict    bool
	noLang    bool
	noDetect  bool
	normalize bool
	yes       bool

	ssh         bool
	sshHost     string
	sshPort     int
	sshUser     string
	sshPassword string
	sshKey      string
	remoteDir   string
	insecure    bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	cfg    *types.Config
	logger *log.Logger
	stdin  *os.File
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{stdin: os.Stdin}
	defaults := config.GetDefaults()

	root := &cobra.Command{
		Use:   "subrename [target]",
		Short: "Rename subtitles after the videos they belong to",
		Long: `Pairs the subtitles and videos of a directory by sorted name and renames
each subtitle to its video's base name, adding a language tag taken from the
subtitle's name or detected from its text.

The target is a local directory or an sftp://user@host:port/dir URL.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRename(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default: ~/.config/subrename/config.yml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&a.flags.dir, "dir", "d", ".", "directory to process")
	pf.BoolVarP(&a.flags.ssh, "ssh", "s", false, "work on a remote directory over SFTP")
	pf.StringVar(&a.flags.sshHost, "ssh-host", defaults.Remote.Host, "SSH host")
	pf.IntVar(&a.flags.sshPort, "ssh-port", defaults.Remote.Port, "SSH port")
	pf.StringVar(&a.flags.sshUser, "ssh-user", "", "SSH user name")
	pf.StringVar(&a.flags.sshPassword, "ssh-password", "", "SSH password (prefer keys or the agent)")
	pf.StringVar(&a.flags.sshKey, "ssh-key", "", "SSH private key file")
	pf.StringVar(&a.flags.remoteDir, "remote-dir", "", "remote directory (implies --ssh)")
	pf.BoolVar(&a.flags.insecure, "insecure", false, "skip host key verification")
	pf.BoolVar(&a.flags.noLang, "no-lang", false, "do not add language tags")
	pf.BoolVar(&a.flags.noDetect, "no-detect", false, "only take language tags from file names")
	pf.BoolVar(&a.flags.normalize, "normalize-lang", false, "normalize tags to ISO 639-1 (eng → en, jp → ja)")
	pf.BoolVar(&a.flags.strict, "strict", false, "fail when video and subtitle counts differ")

	f := root.Flags()
	f.BoolVarP(&a.flags.dryRun, "dry-run", "n", false, "show the renames without applying them")
	f.BoolVarP(&a.flags.yes, "yes", "y", false, "do not ask for confirmation")

	root.AddCommand(
		newScanCmd(a),
		newLangCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			l := ui.Logger()
			if !ui.HasLogger() {
				// Flag parsing fails before setup creates the logger.
				l = ui.NewLogger(os.Stderr, false)
			}
			l.Error(err)
		}
		stop()
		os.Exit(1)
	}
}

// setup creates the logger and loads the configuration.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = ui.NewLogger(cmd.ErrOrStderr(), a.flags.verbose)
	ui.SetLogger(a.logger)
	ui.ConfigureLoggerStyles()

	path := a.flags.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			a.logger.Debug("No config directory", "error", err)
			cfg := config.GetDefaults()
			a.cfg = &cfg
			a.applyFlags(cmd)
			return nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded config", "path", path)
	a.cfg = cfg
	a.applyFlags(cmd)
	return nil
}

// applyFlags lets explicitly set flags override the config file.
func (a *app) applyFlags(cmd *cobra.Command) {
	changed := cmd.Flags().Changed
	cfg := a.cfg

	if changed("dry-run") {
		cfg.DryRun = a.flags.dryRun
	}
	if changed("strict") {
		cfg.Strict = a.flags.strict
	}
	if changed("no-lang") {
		cfg.Language.Enabled = !a.flags.noLang
	}
	if changed("no-detect") {
		cfg.Language.Detect = !a.flags.noDetect
	}
	if changed("normalize-lang") {
		cfg.Language.Normalize = a.flags.normalize
	}
	if changed("ssh-host") {
		cfg.Remote.Host = a.flags.sshHost
	}
	if changed("ssh-port") {
		cfg.Remote.Port = a.flags.sshPort
	}
	if changed("ssh-user") {
		cfg.Remote.User = a.flags.sshUser
	}
	if changed("ssh-password") {
		cfg.Remote.Password = a.flags.sshPassword
	}
	if changed("ssh-key") {
		cfg.Remote.Key = a.flags.sshKey
	}
	if changed("insecure") {
		cfg.Remote.InsecureIgnoreHostKey = a.flags.insecure
	}
}
