package config

import (
	"fmt"
	"slices"
)

var (
	validationPolicies = []string{"warn", "reject", "off"}
	uiModes            = []string{"auto", "live", "plain"}
)

// Validate checks enumerated settings.
func Validate(cfg Config) error {
	collector := &issueCollector{}
	if !slices.Contains(validationPolicies, cfg.Extract.Validation) {
		collector.add("extract.validation", fmt.Sprintf("unsupported policy %q (expected warn|reject|off)", cfg.Extract.Validation))
	}
	if !slices.Contains(uiModes, cfg.UI.Mode) {
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}
	return collector.result()
}
