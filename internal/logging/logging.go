// Package logging builds the tool's zap logger from the merged parameters.
// Records go either to the console or to a size-bounded rotating file.
package logging

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLevel applies when no level was configured at all.
	DefaultLevel = "error"
	// DefaultTimeLayout renders timestamps as 2006-01-02 15:04:05,000.
	DefaultTimeLayout = "2006-01-02 15:04:05,000"
)

// ErrInvalidNumber is returned when the rotation size or count is not an integer.
var ErrInvalidNumber = errors.New("invalid numeric logging value")

// Settings holds the raw, merged logging parameters.
type Settings struct {
	// Level is nil when neither the config file nor the CLI set it.
	Level *string
	File  string
	Count string
	Size  string
}

// Destination selects where records go. An empty File means the console.
type Destination struct {
	File       string
	MaxBytes   int64
	MaxBackups int
}

// IsConsole reports whether records go to the console.
func (d Destination) IsConsole() bool {
	return d.File == ""
}

// Config describes a logger.
type Config struct {
	Level       zapcore.Level
	Destination Destination
	// SuppressConsole points os.Stdout and os.Stderr at the null device
	// until the logger is closed.
	SuppressConsole bool
	TimeLayout      string
	// Console receives records for the console destination. Defaults to os.Stderr.
	Console zapcore.WriteSyncer
	Name    string
}

// Logger is the configured logger handle. Close releases the log file and
// restores the standard streams.
type Logger struct {
	*zap.Logger

	level   zap.AtomicLevel
	closers []func() error
}

// ParseLevel maps a level name to its threshold: debug, info and error map to
// themselves, nil maps to DefaultLevel and anything else maps to info.
func ParseLevel(name *string) zapcore.Level {
	value := DefaultLevel
	if name != nil {
		value = *name
	}

	switch value {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ConfigFrom resolves raw settings into a Config. Size and count are only
// coerced when a log file is set.
func ConfigFrom(s Settings) (Config, error) {
	cfg := Config{
		Level:      ParseLevel(s.Level),
		TimeLayout: DefaultTimeLayout,
	}
	if s.File == "" {
		return cfg, nil
	}

	size, err := strconv.ParseInt(strings.TrimSpace(s.Size), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("%w: log file size %q", ErrInvalidNumber, s.Size)
	}
	count, err := strconv.Atoi(strings.TrimSpace(s.Count))
	if err != nil {
		return Config{}, fmt.Errorf("%w: log file count %q", ErrInvalidNumber, s.Count)
	}

	cfg.Destination = Destination{
		File:       s.File,
		MaxBytes:   size,
		MaxBackups: count,
	}
	cfg.SuppressConsole = true
	return cfg, nil
}

// NewEncoderConfig returns the encoder settings for lines shaped as
// "<timestamp> - <LEVEL> : <message>".
func NewEncoderConfig(layout string) zapcore.EncoderConfig {
	if layout == "" {
		layout = DefaultTimeLayout
	}

	return zapcore.EncoderConfig{
		TimeKey:    "timestamp",
		LevelKey:   "level",
		MessageKey: "message",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(layout) + " -")
		},
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(l.CapitalString() + " :")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	l := &Logger{level: zap.NewAtomicLevelAt(cfg.Level)}

	var sink zapcore.WriteSyncer
	if cfg.Destination.IsConsole() {
		sink = cfg.Console
		if sink == nil {
			sink = zapcore.Lock(os.Stderr)
		}
	} else {
		file, err := OpenRotatingFile(cfg.Destination.File, cfg.Destination.MaxBytes, cfg.Destination.MaxBackups)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		sink = file
		l.closers = append(l.closers, file.Close)
	}

	if cfg.SuppressConsole {
		restore, err := SuppressStdStreams()
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("suppress console: %w", err), l.Close())
		}
		l.closers = append(l.closers, restore)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(NewEncoderConfig(cfg.TimeLayout)), sink, l.level)
	l.Logger = zap.New(core, zap.ErrorOutput(sink))
	if cfg.Name != "" {
		l.Logger = l.Logger.Named(cfg.Name)
	}

	return l, nil
}

// AtomicLevel returns the threshold shared by every logger derived from l.
func (l *Logger) AtomicLevel() zap.AtomicLevel {
	return l.level
}

// Close restores the standard streams and closes the log file, newest resource first.
func (l *Logger) Close() error {
	var err error
	for i := len(l.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, l.closers[i]())
	}
	l.closers = nil
	return err
}
