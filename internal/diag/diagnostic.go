// Package diag is the diagnostic channel named as an external collaborator
// in the analyzer's interface contract: an assertion primitive and a
// leveled debug-log primitive, plus the structural-precondition Fault
// the Builder and the parallelization pass raise when an invariant they
// rely on does not hold.
package diag

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Stage identifies which part of the analyzer produced the diagnostic.
type Stage string

const (
	StagePoly    Stage = "poly"
	StageAutopar Stage = "autopar"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityNote  Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// CodeLetStmtProducedWrite: spec §4.2 — the Builder met a LetStmt that
	// binds the name of an array whose ProducerConsumer body is currently
	// being walked.
	CodeLetStmtProducedWrite Code = "POLY_LETSTMT_PRODUCED_WRITE"

	// CodeUnsupportedScheduleShape: spec §3 — a schedule operation found
	// an empty schedule or trailing entries that did not match the
	// expected [..., var, int] pattern, two schedules of different length
	// compared Equal at every shared position, or the Builder met a
	// statement kind it does not handle.
	CodeUnsupportedScheduleShape Code = "POLY_UNSUPPORTED_SCHEDULE_SHAPE"

	// CodeEmptyDomain: a downdate_for/pop_for was attempted on an empty
	// domain stack.
	CodeEmptyDomain Code = "POLY_EMPTY_DOMAIN"

	// CodeSchedulePositionMismatch: spec §4.5 step 2 — a dependence's
	// source and target disagree on the schedule position of the loop
	// variable being tested for parallelism.
	CodeSchedulePositionMismatch Code = "AUTOPAR_SCHEDULE_POSITION_MISMATCH"

	// CodeMismatchedArity: a dependence was requested between two
	// references to the same array with a different number of arguments.
	CodeMismatchedArity Code = "POLY_MISMATCHED_ARITY"
)

// Diagnostic is surfaced when a structural precondition is violated.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// Fault wraps a Diagnostic so it can be panicked with and recovered as a
// typed error at the single entry point of an analysis pass, rather than
// threaded as an error return through every internal recursive call —
// the same "abort with a diagnostic, no local recovery" discipline spec.md
// §7 describes for structural precondition violations.
type Fault struct {
	Diagnostic Diagnostic
}

func (f Fault) Error() string { return f.Diagnostic.Error() }

// Assert panics with a Fault if cond is false. It is the analyzer's only
// form of internal precondition checking: a violation is a bug in the
// Builder or the pass, not a recoverable user-facing error.
func Assert(cond bool, stage Stage, code Code, format string, args ...any) {
	if cond {
		return
	}
	panic(Fault{Diagnostic: Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	}})
}

// Recover turns a panicked Fault into an error. Call via `defer` wrapping
// a `recover()` at an analysis entry point; panics that are not a Fault
// are re-panicked.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if fault, ok := r.(Fault); ok {
		*err = fault
		return
	}
	panic(r)
}

// Logger is the leveled debug-log primitive. Higher verbosity levels are
// progressively more detailed, matching the original's `debug(2) << ...`
// call sites: a level is only emitted once the logger's threshold has
// been raised to admit it.
type Logger struct {
	log       *logrus.Logger
	verbosity int
}

// NewLogger returns a Logger that by default only emits notes (verbosity 0).
func NewLogger() *Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &Logger{log: l, verbosity: 0}
}

// SetVerbosity raises or lowers the threshold below which Debug calls are
// emitted.
func (lg *Logger) SetVerbosity(level int) {
	if lg == nil {
		return
	}
	lg.verbosity = level
	if level > 0 {
		lg.log.SetLevel(logrus.DebugLevel)
	} else {
		lg.log.SetLevel(logrus.InfoLevel)
	}
}

// Debug logs at the given verbosity level, suppressed unless the logger's
// threshold is at least that level.
func (lg *Logger) Debug(level int, format string, args ...any) {
	if lg == nil || level > lg.verbosity {
		return
	}
	lg.log.WithField("verbosity", level).Debugf(format, args...)
}
