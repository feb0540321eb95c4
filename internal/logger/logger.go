package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the output format of the command logger.
type Options struct {
	// App is attached to every entry as the "app" field. Empty omits it.
	App   string
	JSON  bool
	Debug bool
}

// New builds the logger shared by the run and check commands.
func New(opts Options) (*zap.Logger, error) {
	return newConfig(opts).Build()
}

func newConfig(opts Options) zap.Config {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoder := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalColorLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.TimeEncoderOfLayout("15:04:05"),

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}

	encoding := "console"
	if opts.JSON {
		encoding = "json"
		encoder.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	var initial map[string]any
	if opts.App != "" {
		initial = map[string]any{"app": opts.App}
	}

	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoder,
		InitialFields:    initial,
	}
}
