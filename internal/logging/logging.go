// Package logging builds the zap loggers used across quizkit.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour.
type Options struct {
	// Env "production" selects JSON output; anything else selects console output.
	Env     string
	Verbose bool
	Quiet   bool
}

// New builds a logger writing to w. Quiet wins over Verbose.
func New(w io.Writer, opts Options) *zap.Logger {
	if opts.Quiet || w == nil {
		return zap.NewNop()
	}
	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if opts.Env == "production" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}
