package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	loesserr "github.com/YuminosukeSato/loessgo/pkg/errors"
)

const (
	// ErrAttrKey is the attribute key used for error values.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the attribute key used for extracted stack traces.
	StacktraceAttrKey = "stacktrace"
)

var (
	loggerMu      sync.RWMutex
	defaultLogger Logger = newZerologLogger(os.Stderr, zerolog.InfoLevel)
)

func init() {
	// Route pkg/errors warnings into the structured log. Warnings that
	// implement zerolog.LogObjectMarshaler carry their own fields.
	loesserr.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn("smoothing warning", ErrAttrKey, warning)
	})
}

// GetLogger returns the default logger instance.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the default logger, returning the previous one.
// Tests use this together with NewTestLogger to capture output.
func SetLogger(l Logger) Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// SetOutput reconfigures the default logger to write to w at the given level.
func SetOutput(w io.Writer, level Level) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = newZerologLogger(w, toZerologLevel(level))
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologLogger implements Logger on top of rs/zerolog.
type zerologLogger struct {
	zl zerolog.Logger
}

func newZerologLogger(w io.Writer, level zerolog.Level) *zerologLogger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.zl.Debug(), msg, fields)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	z.emit(z.zl.Info(), msg, fields)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.zl.Warn(), msg, fields)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	z.emit(z.zl.Error(), msg, fields)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.zl.GetLevel()
}

// emit applies alternating key-value fields to the event. Error values get
// special treatment: structured marshalling when available, plus a stack
// trace attribute when cockroachdb/errors recorded one.
func (z *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	i := 0
	// A bare leading error (not part of a key-value pair) is allowed.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			z.addError(e, err)
			i = 1
		}
	}
	for ; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, ok := fields[i+1].(error); ok && key == ErrAttrKey {
			z.addError(e, err)
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}

func (z *zerologLogger) addError(e *zerolog.Event, err error) {
	if marshaler, ok := err.(zerolog.LogObjectMarshaler); ok {
		e.Object(ErrAttrKey, marshaler)
	} else {
		e.AnErr(ErrAttrKey, err)
	}
	if st := extractStacktrace(err); st != "" {
		e.Str(StacktraceAttrKey, st)
	}
}

// extractStacktrace pulls the stack trace recorded by cockroachdb/errors,
// if any.
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
