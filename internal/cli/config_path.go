package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"quizkit/internal/config"
	"quizkit/internal/logging"
)

// resolveConfigPath normalizes a config path or finds it from CWD. An empty
// result means no config file is in use.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// setup loads settings and builds the command logger.
func setup(common commonFlags, stderr io.Writer) (config.Config, *zap.Logger, error) {
	path, err := resolveConfigPath(common.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.New(stderr, logging.Options{Env: cfg.Env, Verbose: common.verbose, Quiet: common.quiet})
	if path != "" {
		logger.Debug("config loaded", zap.String("path", path))
	}
	return cfg, logger, nil
}
