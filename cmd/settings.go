package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gitsift/internal/config"
	apperrors "gitsift/pkg/errors"
)

// settingKeys are the config keys a flag of the same name (dashes for
// underscores) overrides
var settingKeys = []string{"repo", "branch", "host", "page_size", "threshold", "workers"}

// settingsFile is the config file the last loadSettings read, empty when none
var settingsFile string

// loadSettings resolves the config with precedence flag > environment >
// config file > defaults
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	settingsFile = ""

	defaults := config.Default()
	v.SetDefault("repo", defaults.Repo)
	v.SetDefault("branch", defaults.Branch)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("threshold", defaults.Threshold)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv(config.EnvConfigFile)
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "failed to read config file").
				WithContext("path", explicit)
		}
	} else {
		settingsFile = v.ConfigFileUsed()
		logger.WithField("path", settingsFile).Debug("loaded config file")
	}

	if err := bindSettingFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "failed to decode settings")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindSettingFlags binds every flag named after a setting key to that key
func bindSettingFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range settingKeys {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to bind flag").
				WithContext("flag", flag.Name)
		}
	}
	return nil
}
