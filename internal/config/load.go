// Package config loads quizkit settings from an optional .quizkit.yml file
// and QUIZKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. QUIZKIT_UI_MODE.
const EnvPrefix = "QUIZKIT"

// Config holds every quizkit setting.
type Config struct {
	Env     string        `mapstructure:"env"`
	Extract ExtractConfig `mapstructure:"extract"`
	Render  RenderConfig  `mapstructure:"render"`
	Session SessionConfig `mapstructure:"session"`
	UI      UIConfig      `mapstructure:"ui"`
	Legacy  LegacyConfig  `mapstructure:"legacy"`
}

// ExtractConfig tunes question data discovery.
type ExtractConfig struct {
	Permissive bool   `mapstructure:"permissive"` // accept object-literal syntax in script blocks
	Validation string `mapstructure:"validation"` // warn | reject | off
}

// RenderConfig tunes the rendered quiz.
type RenderConfig struct {
	BackHref               string `mapstructure:"back_href"`
	ExplanationPlaceholder string `mapstructure:"explanation_placeholder"`
}

// SessionConfig tunes question ordering. Seed 0 means random.
type SessionConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

// UIConfig tunes the terminal host.
type UIConfig struct {
	Mode    string `mapstructure:"mode"` // auto | live | plain
	NoColor bool   `mapstructure:"no_color"`
}

// LegacyConfig controls the legacy page neutralizer.
type LegacyConfig struct {
	Disable bool `mapstructure:"disable"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Env:     "development",
		Extract: ExtractConfig{Permissive: true, Validation: "warn"},
		Render: RenderConfig{
			BackHref:               "../index.html",
			ExplanationPlaceholder: "No explanation provided.",
		},
		UI: UIConfig{Mode: "auto"},
	}
}

// Load reads the config file at path (skipped when path is empty), applies
// environment overrides, then normalizes and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("env", defaults.Env)
	v.SetDefault("extract.permissive", defaults.Extract.Permissive)
	v.SetDefault("extract.validation", defaults.Extract.Validation)
	v.SetDefault("render.back_href", defaults.Render.BackHref)
	v.SetDefault("render.explanation_placeholder", defaults.Render.ExplanationPlaceholder)
	v.SetDefault("session.seed", defaults.Session.Seed)
	v.SetDefault("ui.mode", defaults.UI.Mode)
	v.SetDefault("ui.no_color", defaults.UI.NoColor)
	v.SetDefault("legacy.disable", defaults.Legacy.Disable)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %q not found", path)
			}
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
