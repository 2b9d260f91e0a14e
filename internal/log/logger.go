// Package log provides the verbose logger used by the CLI and the runner.
package log

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes verbose diagnostic messages to W when Enabled is true.
// It is safe for concurrent use; a nil *Logger discards everything.
type Logger struct {
	Enabled bool
	W       io.Writer

	mu sync.Mutex
}

// Printf writes one formatted line to W.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled || l.W == nil {
		return
	}
	line := fmt.Sprintf(format+"\n", args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.W, line)
}
