package logger

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a leveled printf-style logger backed by zap
type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// Options configures a Logger built with NewWithOptions
type Options struct {
	Level Level
	// Output receives console logs, os.Stderr when nil
	Output io.Writer
	Prefix string

	// File enables JSON logs rotated by size
	File       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// New creates a console logger writing to output
func New(level Level, output io.Writer, prefix string) *Logger {
	return NewWithOptions(Options{Level: level, Output: output, Prefix: prefix})
}

// NewWithOptions creates a logger with console and optional file output
func NewWithOptions(o Options) *Logger {
	if o.Output == nil {
		o.Output = os.Stderr
	}
	level := zap.NewAtomicLevelAt(o.Level.zapLevel())

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	if isTerminal(o.Output) {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(o.Output), level),
	}

	if o.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   o.File,
				MaxSize:    o.MaxSizeMB,
				MaxBackups: o.MaxBackups,
				Compress:   o.Compress,
			}),
			level,
		))
	}

	base := zap.New(zapcore.NewTee(cores...))
	if o.Prefix != "" {
		base = base.Named(o.Prefix)
	}

	return &Logger{level: level, sugar: base.Sugar()}
}

// isTerminal reports whether output is a terminal
func isTerminal(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}

// SetLevel sets the minimum level
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current minimum level
func (l *Logger) GetLevel() Level {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return DEBUG
	case zapcore.WarnLevel:
		return WARN
	case zapcore.ErrorLevel:
		return ERROR
	case zapcore.FatalLevel:
		return FATAL
	default:
		return INFO
	}
}

// With returns a child logger that adds key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.sugar.Infof(format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }

// Fatal logs at FATAL and exits the program
func (l *Logger) Fatal(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// ParseLevel parses a level name
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug", "DEBUG":
		return DEBUG, nil
	case "info", "INFO":
		return INFO, nil
	case "warn", "WARN", "warning", "WARNING":
		return WARN, nil
	case "error", "ERROR":
		return ERROR, nil
	case "fatal", "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", s)
	}
}

var globalLogger atomic.Pointer[Logger]

func init() {
	globalLogger.Store(New(INFO, os.Stderr, ""))
}

// Configure replaces the global logger
func Configure(o Options) {
	globalLogger.Store(NewWithOptions(o))
}

// SetGlobalLevel sets the global logger level
func SetGlobalLevel(level Level) {
	Global().SetLevel(level)
}

// SetGlobalLevelFromString sets the global logger level from a name
func SetGlobalLevelFromString(s string) error {
	level, err := ParseLevel(s)
	if err != nil {
		return err
	}
	Global().SetLevel(level)
	return nil
}

func Debug(format string, v ...interface{}) { Global().Debug(format, v...) }
func Info(format string, v ...interface{})  { Global().Info(format, v...) }
func Warn(format string, v ...interface{})  { Global().Warn(format, v...) }
func Error(format string, v ...interface{}) { Global().Error(format, v...) }
func Fatal(format string, v ...interface{}) { Global().Fatal(format, v...) }

// Global returns the global logger
func Global() *Logger {
	return globalLogger.Load()
}
