package app

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

func addConfigFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, configFlagName, "c", "",
		"Read configuration from the specified `FILE`; JSON, TOML and YAML are supported.")
}

// loadConfig merges, in increasing priority, flag defaults, the config
// file, <PREFIX>_* environment variables and explicitly set flags, and
// decodes the result into out using its mapstructure tags.
func loadConfig(fs *pflag.FlagSet, configFile, envPrefix string, out any) error {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}
