package cli

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envProduction  = "production"
	envDevelopment = "development"
	envLocal       = "local"
)

// newLogger builds a JSON logger writing to w. Development and local
// environments default to debug, everything else to info; level overrides
// both.
func newLogger(environment, level string, w io.Writer) (*zap.Logger, error) {
	environment = strings.ToLower(strings.TrimSpace(environment))
	switch environment {
	case "", envProduction, envDevelopment, envLocal:
	default:
		return nil, fmt.Errorf("invalid environment %q", environment)
	}

	lvl, err := resolveLevel(environment, level)
	if err != nil {
		return nil, err
	}

	cfg := buildConfigByEnvironment(environment)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(w), lvl)

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}

func resolveLevel(environment, level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(strings.TrimSpace(level)); err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", level, err)
		}
		return zap.NewAtomicLevelAt(parsed), nil
	}

	if environment == envDevelopment || environment == envLocal {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}
	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func buildConfigByEnvironment(environment string) zap.Config {
	if environment == envDevelopment || environment == envLocal {
		cfg := zap.NewDevelopmentConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
