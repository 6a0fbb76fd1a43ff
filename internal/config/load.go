package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var (
	ErrFailedToSetDefaults = errors.New("error occurred while setting defaults")
	ErrConfigPath          = errors.New("config path error")
)

// Load builds the explorer's Config from defaults, then an optional
// YAML file found in one of configFileDirs, then IROHA_EXPLORER_*
// environment variables — each stage overriding the previous one
// (SPEC_FULL.md §4.8).
func Load(configFileDirs ...string) (*Config, error) {
	cfg := getDefaultConfig()

	if err := setDefaults(cfg); err != nil {
		return nil, err
	}

	if err := overrideWithFiles(configFileDirs...); err != nil {
		return nil, err
	}

	viper.SetEnvPrefix("IROHA_EXPLORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(defaultConfig *Config) error {
	defaultsMap := make(map[string]interface{})
	if err := mapstructure.Decode(defaultConfig, &defaultsMap); err != nil {
		return errors.Join(ErrFailedToSetDefaults, err)
	}
	for key, value := range defaultsMap {
		viper.SetDefault(key, value)
	}
	return nil
}

func overrideWithFiles(configFileDirs ...string) error {
	if len(configFileDirs) == 0 || configFileDirs[0] == "" {
		return nil
	}

	for _, path := range configFileDirs {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrConfigPath, fmt.Errorf("path: %s does not exist", path))
			}
			return err
		}
		if !stat.IsDir() {
			return errors.Join(ErrConfigPath, fmt.Errorf("path: %s should be a directory", path))
		}
		viper.AddConfigPath(path)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
