// Package logger provides the structured logging used across the roster engine.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a logging level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls how the global logger is initialized.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json/console
	Output     string `json:"output"` // stdout/stderr/file
	FilePath   string `json:"file_path,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

// DefaultConfig returns the config used when nothing else has initialized the logger.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger. Safe to call more than once; only the first call applies.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger. It calls Init(DefaultConfig()) only when the logger's level
// reads as Disabled, which zerolog's zero-value Logger does not; until Init is called
// explicitly, the returned logger is that zero value and writes nothing.
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

// Debug logs at debug level.
func Debug() *zerolog.Event { return Get().Debug() }

// Info logs at info level.
func Info() *zerolog.Event { return Get().Info() }

// Warn logs at warn level.
func Warn() *zerolog.Event { return Get().Warn() }

// Error logs at error level.
func Error() *zerolog.Event { return Get().Error() }

// Fatal logs at fatal level.
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError attaches err to an error-level event.
func WithError(err error) *zerolog.Event { return Get().Error().Err(err) }

// WithField returns a logger with a single extra field attached.
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields returns a logger with several extra fields attached.
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// SolverLogger is the roster engine's solve-scoped logger.
type SolverLogger struct {
	base *zerolog.Logger
}

// NewSolverLogger creates a solver-scoped logger.
func NewSolverLogger() *SolverLogger {
	l := Get().With().Str("component", "solver").Logger()
	return &SolverLogger{base: &l}
}

// StartSolve logs the beginning of a solve session.
func (l *SolverLogger) StartSolve(sessionID string, hospitals, workers, days int) {
	l.base.Info().
		Str("session_id", sessionID).
		Int("hospitals", hospitals).
		Int("workers", workers).
		Int("days", days).
		Msg("starting solve session")
}

// RuleApplied logs that a rule finished building its constraints.
func (l *SolverLogger) RuleApplied(name string) {
	l.base.Debug().Str("rule", name).Msg("rule applied")
}

// SolveComplete logs a finished solve, successful or not.
func (l *SolverLogger) SolveComplete(status string, d time.Duration, objective float64) {
	l.base.Info().
		Str("status", status).
		Dur("duration", d).
		Float64("objective", objective).
		Msg("solve complete")
}

// SolveInfeasible logs an infeasible verdict along with the number of binding diagnostics found.
func (l *SolverLogger) SolveInfeasible(bindingPoints int) {
	l.base.Warn().
		Int("binding_points", bindingPoints).
		Msg("solve returned infeasible")
}
