// Package logging builds the zap logger used by the command line and
// narrates shooting runs through it.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/cablesim/internal/shooting"
)

// New returns a production logger, at debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// IterationLogger logs every secant iterate at debug level.
type IterationLogger struct {
	logger *zap.Logger
}

func NewIterationLogger(logger *zap.Logger) *IterationLogger {
	return &IterationLogger{logger: logger}
}

func (l *IterationLogger) OnIterate(it shooting.Iterate) {
	l.logger.Debug("secant iterate",
		zap.Int("n", it.N),
		zap.Float64("slope", it.Slope),
		zap.Float64("residual", it.Residual),
	)
}

// Seeds logs the two starting evaluations of a finished run.
func Seeds(logger *zap.Logger, res *shooting.Result) {
	for i, s := range res.Seeds {
		logger.Debug("secant seed",
			zap.Int("seed", i),
			zap.Float64("slope", s.Slope),
			zap.Float64("residual", s.Residual),
		)
	}
}

// Summary logs the terminal state at info level, or warn when the result
// carries warnings.
func Summary(logger *zap.Logger, res *shooting.Result) {
	fields := []zap.Field{
		zap.String("status", res.Status.String()),
		zap.Float64("slope", res.Slope),
		zap.Int("iterations", res.Iterations),
		zap.Int("evaluations", res.Evaluations),
		zap.Float64("residual", res.Residual),
	}

	if len(res.Warnings) == 0 {
		logger.Info("shooting finished", fields...)
		return
	}
	fields = append(fields, zap.Errors("warnings", res.Warnings))
	logger.Warn("shooting finished with warnings", fields...)
}
