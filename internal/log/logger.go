package log

import (
	"fmt"
	"strings"

	"github.com/denchenko/usergrid/internal/config"
	do "github.com/samber/do/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Package = do.Package(
	do.Lazy[*zap.Logger](NewLoggerFromInjector),
)

// NewLoggerFromInjector builds the logger from the injected configuration.
func NewLoggerFromInjector(i do.Injector) (*zap.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return NewLogger(cfg.LogEnv, cfg.LogLevel)
}

// NewLogger builds a console logger for "dev" and a JSON logger for "prod".
func NewLogger(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	if strings.EqualFold(env, "prod") {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zcfg.DisableStacktrace = true
	}

	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.With(zap.String("service", "usergrid")), nil
}

// UserID is the field used to tag log entries with a user identity.
func UserID(id string) zap.Field {
	return zap.String("user_id", id)
}

// Op is the field used to tag log entries with a repository or store operation.
func Op(op string) zap.Field {
	return zap.String("op", op)
}
