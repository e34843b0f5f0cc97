// Package config loads mdfence settings from config.yaml and MDFENCE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/mdfence/capability"
)

const envPrefix = "MDFENCE"

type Config struct {
	Editor    EditorConfig              `mapstructure:"editor"`
	Theme     ThemeConfig               `mapstructure:"theme"`
	Log       LogConfig                 `mapstructure:"log"`
	Languages []capability.LanguageSpec `mapstructure:"languages"` // merged over the built-in list by name
}

type EditorConfig struct {
	LineNumbers  bool `mapstructure:"line_numbers"`
	TabWidth     int  `mapstructure:"tab_width"`
	AutoComplete bool `mapstructure:"auto_complete"`
	HistoryLimit int  `mapstructure:"history_limit"` // 0: buffer default, negative: no undo
}

type ThemeConfig struct {
	Style string `mapstructure:"style"` // chroma style name
}

type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // empty: discard
}

// Dir returns the directory searched for config.yaml.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mdfence"), nil
}

// Load reads the config file at path, or searches Dir() and the working
// directory for config.yaml when path is empty. Finding no config.yaml in the
// search is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("editor.line_numbers", true)
	v.SetDefault("editor.tab_width", 4)
	v.SetDefault("editor.auto_complete", true)
	v.SetDefault("editor.history_limit", 1000)
	v.SetDefault("theme.style", capability.DefaultThemeName)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Registry builds the language registry: the built-in languages with the
// configured ones merged over them.
func (c *Config) Registry() (*capability.Registry, error) {
	if len(c.Languages) == 0 {
		return capability.Default(), nil
	}
	reg, err := capability.NewRegistry(capability.Merge(capability.DefaultSpecs(), c.Languages))
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	return reg, nil
}
