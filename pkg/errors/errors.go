// Package errors provides structured error handling and the warning system
// used across loessgo. Fatal conditions (bad configuration, insufficient
// data) are returned as errors with stack traces attached via
// cockroachdb/errors; recoverable per-point conditions are reported as
// warnings so a single bad neighborhood never aborts a whole curve.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("loessgo-Warning: %v\n", w)
	}
	// zerolog warn function, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// Use it to silence or redirect DegenerateNeighborhoodWarning and friends.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs the zerolog-backed warn function (set by pkg/log
// to avoid a circular import).
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog sink has been installed it is
// preferred; otherwise the plain handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// DegenerateNeighborhoodWarning is emitted when the local design matrix for
// an evaluation point is rank-deficient (for example all neighborhood
// x-values coincide while the requested degree is 1 or 2) and the fit falls
// back to the weighted mean. The affected point is also flagged on the
// returned curve; this warning exists so callers can audit fit quality
// without inspecting every point.
type DegenerateNeighborhoodWarning struct {
	X        float64 // evaluation point
	Degree   int     // requested local degree
	Fallback int     // degree actually used
	Reason   string
}

func (w *DegenerateNeighborhoodWarning) Error() string {
	return fmt.Sprintf("degenerate neighborhood at x=%g: %s. Falling back from degree %d to degree %d",
		w.X, w.Reason, w.Degree, w.Fallback)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *DegenerateNeighborhoodWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("x", w.X).
		Int("degree", w.Degree).
		Int("fallback_degree", w.Fallback).
		Str("reason", w.Reason).
		Str("type", "DegenerateNeighborhoodWarning")
}

// NewDegenerateNeighborhoodWarning creates a new DegenerateNeighborhoodWarning.
func NewDegenerateNeighborhoodWarning(x float64, degree, fallback int, reason string) *DegenerateNeighborhoodWarning {
	return &DegenerateNeighborhoodWarning{X: x, Degree: degree, Fallback: fallback, Reason: reason}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// ConfigurationError reports an invalid smoother parameter at construction
// time. Configuration is never silently clamped; a bad value fails fast.
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("loessgo: invalid configuration for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// InsufficientDataError reports a dataset too small for the requested local
// fit. A degree-λ polynomial needs at least λ+1 samples.
type InsufficientDataError struct {
	Op       string
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("loessgo: %s: insufficient data. Need at least %d samples, got %d", e.Op, e.Required, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("required", e.Required).
		Int("got", e.Got).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates an InsufficientDataError with a stack trace.
func NewInsufficientDataError(op string, required, got int) error {
	err := &InsufficientDataError{Op: op, Required: required, Got: got}
	return errors.WithStack(err)
}

// DimensionError reports mismatched lengths between paired inputs, for
// example x and y columns of different length.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("loessgo: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for the operation,
// such as a NaN sample or an empty evaluation grid.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("loessgo: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Shared sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty dataset is supplied.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix marks a rank-deficient local design matrix.
	ErrSingularMatrix = New("singular matrix")
)
