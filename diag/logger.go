package diag

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
)

// Logger routes diagnostics from the grid-search components to an output
// stream and an error stream. Components receive a Logger explicitly rather
// than writing to process-wide state, so quiet mode is a property of the
// Logger handed to them.
type Logger struct {
	out  *log.Logger
	warn *log.Logger

	// exit is called by Fatalf after the message is emitted. Overridable
	// in tests.
	exit func(code int)
}

// Interface encapsulates the methods components use to report progress and
// warnings.
type Interface interface {
	Notef(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

// New creates a Logger writing notes to out and warnings to errOut.
func New(out, errOut io.Writer) *Logger {
	return &Logger{
		out:  log.New(out, "", 0),
		warn: log.New(errOut, "", 0),
		exit: os.Exit,
	}
}

// Basic writes notes to stdout and warnings to stderr, matching the behavior
// of a plain command line run.
var Basic = New(os.Stdout, os.Stderr)

// Quiet discards all diagnostics. Fatal errors still terminate the process,
// only their message is suppressed.
var Quiet = New(ioutil.Discard, ioutil.Discard)

// Notef reports normal progress output.
func (l *Logger) Notef(format string, v ...interface{}) {
	l.out.Output(2, fmt.Sprintf(format, v...))
}

// Warnf reports a non-fatal diagnostic.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Output(2, fmt.Sprintf(format, v...))
}

// Fatalf reports a fatal diagnostic and terminates the process with a
// failure status. The termination happens even when the Logger discards the
// message.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.warn.Output(2, fmt.Sprintf(format, v...))
	l.exit(1)
}

// SetExit replaces the process-exit hook, for tests that need to observe a
// fatal diagnostic without terminating.
func (l *Logger) SetExit(exit func(code int)) {
	l.exit = exit
}
