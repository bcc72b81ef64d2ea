// Package lifecycle wraps CLI command execution with timing. Each wrapper
// captures the start time, runs the command, and reports the outcome and
// duration to a Handler.
package lifecycle

import (
	"time"

	"github.com/unclog-go/unclog/internal/output"
)

// Handler receives command completion reports.
type Handler interface {
	// OnCommandComplete is called when a CLI command finishes execution.
	// Parameters:
	//   - name: the command name (e.g., "build", "release")
	//   - success: true if command completed without error
	//   - duration: how long the command took to execute
	OnCommandComplete(name string, success bool, duration time.Duration)
}

// Run executes fn and reports its outcome to handler. A nil handler is
// allowed. The error from fn is returned unchanged.
func Run(handler Handler, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if handler != nil {
		handler.OnCommandComplete(name, err == nil, time.Since(start))
	}
	return err
}

// LogHandler reports completions as debug log lines.
type LogHandler struct{}

// OnCommandComplete implements Handler.
func (LogHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	output.Debug("Command finished", "command", name, "success", success, "duration", duration.Round(time.Microsecond))
}
