// Package errs defines the structured diagnostic records the compiler emits
// and the Sink interface a host uses to collect them.
//
// This mirrors internal/handler's error aggregation in the teacher, stripped
// of its wasm/JS bridging (Handler.Value, vert.ValueOf, syscall/js): the core
// here is a library invoked from ordinary Go, so it hands a caller-provided
// Sink structured records instead of building a JS-visible error object.
package errs

import (
	"fmt"

	"github.com/vuec/compiler/internal/loc"
)

// Kind classifies a CompilationError by the stage that raised it.
type Kind int

const (
	KindLexical Kind = iota + 1
	KindStructural
	KindDirective
	KindExpression
	KindDeprecation
	KindSemantic
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindStructural:
		return "structural"
	case KindDirective:
		return "directive"
	case KindExpression:
		return "expression"
	case KindDeprecation:
		return "deprecation"
	case KindSemantic:
		return "semantic"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Severity distinguishes hard errors from diagnostics that don't block
// compilation.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// CompilationError is the structured record produced at any compilation
// stage. Line/column are resolved lazily via an *loc.LineIndex so hot paths
// that never render a diagnostic never pay for the scan.
type CompilationError struct {
	Kind     Kind
	Severity Severity
	Message  string
	Span     loc.Span
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Positioned renders e with a 1-based line/column prefix resolved against
// lines, the way the teacher's ErrorToMessage derives position from its
// sourcemap chunk builder.
func (e *CompilationError) Positioned(lines *loc.LineIndex) string {
	pos := lines.Position(e.Span.Start)
	return fmt.Sprintf("%d:%d: %s: %s", pos.Line, pos.Column, e.Kind, e.Message)
}

// Sink receives diagnostics as a compilation progresses. A host application
// supplies its own implementation (log to stderr, collect for an LSP, etc);
// spec.md leaves Sink implementations out of the core's scope on purpose.
type Sink interface {
	Error(e *CompilationError)
	Warning(e *CompilationError)
	Info(e *CompilationError)
	Hint(e *CompilationError)
}

// NoopSink discards every diagnostic. Useful for callers who only care about
// the emitted code and are willing to let the compiler recover silently.
type NoopSink struct{}

func (NoopSink) Error(*CompilationError)   {}
func (NoopSink) Warning(*CompilationError) {}
func (NoopSink) Info(*CompilationError)    {}
func (NoopSink) Hint(*CompilationError)    {}

// CollectingSink accumulates every diagnostic it receives, in arrival order,
// split by severity. Analogous to the Rust original's VecErrorHandler and to
// the teacher's Handler.errors/warnings/infos/hints slices.
type CollectingSink struct {
	errs     []*CompilationError
	warnings []*CompilationError
	infos    []*CompilationError
	hints    []*CompilationError
}

func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Error(e *CompilationError) {
	e.Severity = SeverityError
	s.errs = append(s.errs, e)
}

func (s *CollectingSink) Warning(e *CompilationError) {
	e.Severity = SeverityWarning
	s.warnings = append(s.warnings, e)
}

func (s *CollectingSink) Info(e *CompilationError) {
	e.Severity = SeverityInfo
	s.infos = append(s.infos, e)
}

func (s *CollectingSink) Hint(e *CompilationError) {
	e.Severity = SeverityHint
	s.hints = append(s.hints, e)
}

func (s *CollectingSink) HasErrors() bool { return len(s.errs) > 0 }

func (s *CollectingSink) Errors() []*CompilationError   { return s.errs }
func (s *CollectingSink) Warnings() []*CompilationError { return s.warnings }
func (s *CollectingSink) Infos() []*CompilationError    { return s.infos }
func (s *CollectingSink) Hints() []*CompilationError    { return s.hints }

// All returns every collected diagnostic in severity order: errors, then
// warnings, then infos, then hints.
func (s *CollectingSink) All() []*CompilationError {
	out := make([]*CompilationError, 0, len(s.errs)+len(s.warnings)+len(s.infos)+len(s.hints))
	out = append(out, s.errs...)
	out = append(out, s.warnings...)
	out = append(out, s.infos...)
	out = append(out, s.hints...)
	return out
}

// New builds a CompilationError. Severity defaults to SeverityError; sink
// methods overwrite it to match how the diagnostic was actually filed, since
// the same record can be constructed once and routed to Warning or Error
// depending on a caller's recovery policy (e.g. an unterminated HTML comment
// is a warning per spec.md §4.1 but would be an error under strict mode).
func New(kind Kind, span loc.Span, format string, args ...any) *CompilationError {
	return &CompilationError{
		Kind:     kind,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}
