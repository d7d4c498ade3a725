package mat73

import "log"

// Logger receives progress and downgrade diagnostics from the decoder
// and reconstructor: a caller-supplied collaborator instead of global
// prints. Diagnostics never flow through the returned Value.
type Logger interface {
	Printf(format string, args ...any)
}

// noopLogger discards everything. It is the default when no
// WithLogger option is given.
type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// stdLogger adapts the standard library's *log.Logger.
type stdLogger struct {
	l *log.Logger
}

func (s stdLogger) Printf(format string, args ...any) { s.l.Printf(format, args...) }

// NewStdLogger wraps l as a Logger. A nil l wraps log.Default().
func NewStdLogger(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}
	return stdLogger{l: l}
}
