package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitsift/internal/config"
	"gitsift/internal/ui"
	apperrors "gitsift/pkg/errors"
)

var (
	configForce       bool
	configInteractive bool
	configShowFile    bool

	// runWizard is replaced in tests
	runWizard = func(base *config.Config) (*config.Config, error) {
		return ui.NewConfigWizard(base).Run()
	}
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gitsift config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the current settings",
	Long: `Write the resolved settings (defaults, overridden by any config file,
environment variables and flags) to a YAML file. The path defaults to
$GITSIFT_CONFIG or ./.gitsift.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings",
	Long: `Print the settings after applying the config file, environment variables
and flags. With --file, print only what the config file itself stores, over
the defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVarP(&configInteractive, "interactive", "i", false, "ask for each setting")
	configShowCmd.Flags().BoolVar(&configShowFile, "file", false, "print the config file contents instead of the resolved settings")
	addSettingFlags(configInitCmd, "branch", "host", "page-size", "threshold", "workers")
	addSettingFlags(configShowCmd, "branch", "host", "page-size", "threshold", "workers")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultFile()
	if len(args) > 0 {
		path = args[0]
	}

	if config.Exists(path) && !configForce {
		return apperrors.New(apperrors.ErrCodeInvalidInput, fmt.Sprintf("%s already exists", path)).
			WithContext("path", path).
			WithSuggestions("Pass --force to overwrite it")
	}

	cfg := settings
	if configInteractive {
		answered, err := runWizard(settings)
		if err != nil {
			return err
		}
		cfg = answered
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	ui.ShowSuccess(cmd.OutOrStdout(), "wrote "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !configShowFile {
		printSettings(out, settings)
		return nil
	}

	path := settingsFile
	if path == "" {
		path = config.DefaultFile()
	}
	if !config.Exists(path) {
		ui.ShowWarning(out, "no config file at "+path+", showing defaults")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "file:      %s\n", path)
	printSettings(out, cfg)
	return nil
}

func printSettings(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "repo:      %s\n", cfg.Repo)
	fmt.Fprintf(out, "branch:    %s\n", orDefault(cfg.Branch, "HEAD"))
	fmt.Fprintf(out, "host:      %s\n", cfg.Host)
	fmt.Fprintf(out, "page_size: %d\n", cfg.PageSize)
	fmt.Fprintf(out, "threshold: %d\n", cfg.Threshold)
	fmt.Fprintf(out, "workers:   %d\n", cfg.Workers)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
