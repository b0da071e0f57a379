package docparser

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// ErrorKind classifies a diagnostic. Every kind is recoverable: the
// parser always finishes and returns a Root; see RecordingSink and
// DiagSink.
type ErrorKind string

const (
	ErrLexicalUnterminated ErrorKind = "lexical_unterminated"
	ErrUnknownCommand      ErrorKind = "unknown_command"
	ErrArgumentExpected    ErrorKind = "argument_expected"
	ErrUnexpectedToken     ErrorKind = "unexpected_token"
	ErrMismatchedStyle     ErrorKind = "mismatched_style_close"
	ErrUnmatchedStyleOpen  ErrorKind = "unmatched_style_open"
	ErrUnresolvedRef       ErrorKind = "unresolved_reference"
	ErrAmbiguousRef        ErrorKind = "ambiguous_reference"
	ErrCopyCycle           ErrorKind = "copy_cycle"
	ErrTableMalformed      ErrorKind = "table_malformed"
	ErrUnsupportedHtmlTag  ErrorKind = "unsupported_html_tag"
)

// ParseError is a structured diagnostic with file/line context.
type ParseError struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int

	Context string
	Cause   error
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d", e.Line)
	}
	msg := e.Message
	if loc != "" {
		msg = loc + ": " + msg
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) String() string {
	s := fmt.Sprintf("%s (kind: %s)", e.Error(), e.Kind)
	if e.Cause != nil {
		s += fmt.Sprintf("\n  caused by: %v", e.Cause)
	}
	return s
}

// DiagSink is the diagnostics channel. Multi-producer: parses running on
// several goroutines share one sink, so implementations must tolerate
// concurrent writers.
type DiagSink interface {
	WarnDocError(file string, line int, kind ErrorKind, format string, args ...any)
	WarnUncond(format string, args ...any)
}

// logSink is the default DiagSink, backed by a *log.Logger.
type logSink struct {
	log *log.Logger
}

// NewLogSink returns a DiagSink that writes newline-terminated,
// human-readable diagnostics to l. If l is nil, a stderr logger with the
// "docparser: " prefix is used.
func NewLogSink(l *log.Logger) DiagSink {
	if l == nil {
		l = log.New(os.Stderr, "docparser: ", 0)
	}
	return &logSink{log: l}
}

// SilentSink discards all diagnostics, mirroring Configuration.Silent().
func SilentSink() DiagSink {
	return &logSink{log: log.New(io.Discard, "", 0)}
}

func (s *logSink) WarnDocError(file string, line int, kind ErrorKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	loc := file
	if line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d", line)
	}
	if loc != "" {
		s.log.Printf("%s: warning: %s", loc, msg)
	} else {
		s.log.Printf("warning: %s", msg)
	}
}

func (s *logSink) WarnUncond(format string, args ...any) {
	s.log.Printf(format, args...)
}

// RecordingSink both forwards to an inner sink and keeps a structured
// slice so callers can inspect what went wrong after ParseDoc returns.
type RecordingSink struct {
	inner  DiagSink
	mu     sync.Mutex
	errors []*ParseError
}

// NewRecordingSink wraps inner (a stderr logger if nil) with structured
// error recording.
func NewRecordingSink(inner DiagSink) *RecordingSink {
	if inner == nil {
		inner = NewLogSink(nil)
	}
	return &RecordingSink{inner: inner}
}

// Errors returns the diagnostics recorded so far, in emission order.
func (s *RecordingSink) Errors() []*ParseError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ParseError(nil), s.errors...)
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *RecordingSink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors) > 0
}

func (s *RecordingSink) WarnDocError(file string, line int, kind ErrorKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	s.errors = append(s.errors, &ParseError{Kind: kind, Message: msg, File: file, Line: line})
	s.mu.Unlock()
	s.inner.WarnDocError(file, line, kind, format, args...)
}

func (s *RecordingSink) WarnUncond(format string, args ...any) {
	s.inner.WarnUncond(format, args...)
}
