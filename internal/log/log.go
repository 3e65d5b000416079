// Package log is a thin leveled logger on top of zerolog used by the
// secp256k1 command line tool.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarn     = "warn"
	LogLevelError    = "error"
	LogLevelFatal    = "fatal"
	LogLevelDisabled = "disabled"

	// logTestWriterName selects logTestWriter as the output in Init.
	logTestWriterName = "log_test_writer"
)

var (
	log zerolog.Logger

	// panicOnInvalidChars makes the logger panic when a log line contains
	// invalid UTF-8, which usually means raw bytes were formatted with %s.
	panicOnInvalidChars = os.Getenv("LOG_PANIC_ON_INVALIDCHARS") == "true"

	// logTestWriter is the output used when Init gets logTestWriterName.
	logTestWriter io.Writer
)

func init() {
	// Allow overriding the default log level via $LOG_LEVEL, so that
	// programs and tests can easily get debug logs.
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = LogLevelError
	}
	Init(level, "stderr", nil)
}

// invalidCharChecker wraps a writer and panics on entries that carried
// invalid UTF-8 when panicOnInvalidChars is set.  zerolog encodes such bytes
// as the JSON escape of the replacement character.
type invalidCharChecker struct {
	w io.Writer
}

var replacementChar = []byte(`\ufffd`)

func (c invalidCharChecker) Write(p []byte) (int, error) {
	if panicOnInvalidChars && bytes.Contains(p, replacementChar) {
		panic(fmt.Sprintf("log line has invalid characters: %q", p))
	}
	return c.w.Write(p)
}

// Init configures the logger.  Level is one of debug, info, warn, error,
// fatal or disabled.  Output is stdout, stderr, the test writer name or a
// file path.  When errorOutput is not nil, warnings and errors are also
// copied to it.
func Init(level, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			panic(fmt.Sprintf("cannot create log output: %v", err))
		}
		out = f
	}
	if output == "stdout" || output == "stderr" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}
	}
	out = invalidCharChecker{w: out}

	if errorOutput != nil {
		out = zerolog.MultiLevelWriter(out, &errorLevelWriter{zerolog.ConsoleWriter{
			Out:        errorOutput,
			TimeFormat: time.RFC3339Nano,
			NoColor:    true,
		}})
	}

	log = zerolog.New(out).With().Timestamp().Logger()

	switch strings.ToLower(level) {
	case LogLevelDebug:
		log = log.Level(zerolog.DebugLevel)
	case LogLevelInfo:
		log = log.Level(zerolog.InfoLevel)
	case LogLevelWarn:
		log = log.Level(zerolog.WarnLevel)
	case LogLevelError:
		log = log.Level(zerolog.ErrorLevel)
	case LogLevelFatal:
		log = log.Level(zerolog.FatalLevel)
	case LogLevelDisabled:
		log = log.Level(zerolog.Disabled)
	default:
		panic(fmt.Sprintf("invalid log level: %q", level))
	}
}

// errorLevelWriter only forwards warning and higher entries.
type errorLevelWriter struct {
	io.Writer
}

func (w *errorLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.WarnLevel {
		return len(p), nil
	}
	return w.Write(p)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return &log
}

// Level returns the current log level name.
func Level() string {
	return log.GetLevel().String()
}

func Debug(args ...any) {
	log.Debug().Msg(fmt.Sprint(args...))
}

func Info(args ...any) {
	log.Info().Msg(fmt.Sprint(args...))
}

func Warn(args ...any) {
	log.Warn().Msg(fmt.Sprint(args...))
}

func Error(args ...any) {
	log.Error().Msg(fmt.Sprint(args...))
}

func Fatal(args ...any) {
	log.Fatal().Msg(fmt.Sprint(args...))
}

func Debugf(template string, args ...any) {
	log.Debug().Msgf(template, args...)
}

func Infof(template string, args ...any) {
	log.Info().Msgf(template, args...)
}

func Warnf(template string, args ...any) {
	log.Warn().Msgf(template, args...)
}

func Errorf(template string, args ...any) {
	log.Error().Msgf(template, args...)
}

func Fatalf(template string, args ...any) {
	log.Fatal().Msgf(template, args...)
}

// Debugw logs a message with some additional context, given as alternating
// key value pairs.
func Debugw(msg string, keyvalues ...any) {
	log.Debug().Fields(keyvalues).Msg(msg)
}

// Infow logs a message with some additional context.
func Infow(msg string, keyvalues ...any) {
	log.Info().Fields(keyvalues).Msg(msg)
}

// Warnw logs a message with some additional context.
func Warnw(msg string, keyvalues ...any) {
	log.Warn().Fields(keyvalues).Msg(msg)
}

// Errorw logs an error with a message.
func Errorw(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}
