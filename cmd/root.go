package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitsift/internal/config"
	"gitsift/internal/ui"
)

var (
	cfgFile  string
	verbose  bool
	noColor  bool
	logger   = logrus.New()
	settings = config.Default()

	rootCmd = &cobra.Command{
		Use:   "gitsift",
		Short: "Mine a git repository's history",
		Long: `gitsift reads a local git repository and reports on its history:
markdown links to every commit, categorized changes between two commits,
and how many commits each author made to each file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd.ErrOrStderr())
			if noColor {
				ui.SetColor(false)
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			settings = cfg

			logger.WithField("settings", *cfg).Debug("resolved settings")
			return nil
		},
	}
)

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.ShowError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./.gitsift.yaml, then ~/.gitsift.yaml)")
	pf.StringP("repo", "C", ".", "path to the git repository")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
}

func setupLogger(w io.Writer) {
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}
