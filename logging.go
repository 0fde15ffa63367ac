package reactphysics3d

import (
	"log"
	"os"
	"sync"
)

// Logger is what the library logs through. Info covers world lifecycle,
// Warnf covers recoverable oddities such as malformed overlap candidates,
// and Debugf traces per-step pair churn, so DefaultLogger keeps debug off
// unless asked.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes timestamped lines to stderr through the standard
// log package. Safe for concurrent use.
type DefaultLogger struct {
	mu    sync.Mutex
	debug bool
	sink  *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	if prefix != "" {
		prefix += " "
	}
	return &DefaultLogger{
		debug: debug,
		sink:  log.New(os.Stderr, prefix, log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.sink.Printf("DEBUG "+format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.sink.Printf("INFO "+format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.sink.Printf("WARN "+format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.sink.Printf("ERROR "+format, args...)
}

type nopLogger struct{}

// NewNopLogger returns a logger that drops everything. Handy for tests and
// for embedders with their own logging.
func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
