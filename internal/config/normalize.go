package config

import "strings"

// Normalize lowercases enumerations and restores empty text settings.
func Normalize(cfg *Config) {
	defaults := Default()
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaults.Env
	}
	cfg.Extract.Validation = strings.ToLower(strings.TrimSpace(cfg.Extract.Validation))
	if cfg.Extract.Validation == "" {
		cfg.Extract.Validation = defaults.Extract.Validation
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = defaults.UI.Mode
	}
	cfg.Render.BackHref = strings.TrimSpace(cfg.Render.BackHref)
	if cfg.Render.BackHref == "" {
		cfg.Render.BackHref = defaults.Render.BackHref
	}
	if strings.TrimSpace(cfg.Render.ExplanationPlaceholder) == "" {
		cfg.Render.ExplanationPlaceholder = defaults.Render.ExplanationPlaceholder
	}
}
