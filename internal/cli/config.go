package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mydehq/subrename/internal/config"
	"github.com/mydehq/subrename/internal/language"
	"github.com/mydehq/subrename/internal/media"
	"github.com/mydehq/subrename/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Prints the configuration after applying the config file and flags, followed by the recognized extensions and language codes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Clone()
			if cfg.Remote.Password != "" {
				cfg.Remote.Password = "********"
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s %s\n", ui.StyleLabel.Render("Video extensions:"), strings.Join(media.VideoExtensions(), ", "))
			fmt.Fprintf(out, "%s %s\n", ui.StyleLabel.Render("Subtitle extensions:"), strings.Join(media.SubtitleExtensions(), ", "))
			fmt.Fprintf(out, "%s %s\n", ui.StyleLabel.Render("Language codes:"), strings.Join(language.Codes(), ", "))
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.flags.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
			}

			cfg := config.GetDefaults()
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ui.StyleLabel.Render("Created config"), ui.StylePath.Render(path))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}
