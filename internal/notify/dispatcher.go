// Package notify opens pre-filled outbound alert messages through the
// platform's URL handler. Delivery is best effort: no confirmation, no
// retry, failures are only logged.
package notify

import (
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
)

// Runner spawns the platform command that opens the message intent.
// Injectable so tests can observe dispatch attempts without a real send.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child so it never lingers as a zombie in a long-lived host.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Dispatcher sends fire-and-forget alert messages to a phone number.
type Dispatcher struct {
	logger *slog.Logger
	run    Runner
}

// NewDispatcher creates a dispatcher using the real platform opener.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return NewDispatcherWithRunner(logger, execRunner)
}

// NewDispatcherWithRunner creates a dispatcher with a custom runner.
func NewDispatcherWithRunner(logger *slog.Logger, run Runner) *Dispatcher {
	return &Dispatcher{logger: logger, run: run}
}

// Send opens a pre-filled message to the destination number and returns
// immediately. Every attempt is logged with its own id before the spawn,
// so a dispatch is observable even when the platform call fails.
func (d *Dispatcher) Send(destination, message string) {
	attemptID := uuid.NewString()
	target := "https://wa.me/" + destination + "?text=" + url.QueryEscape(message)

	d.logger.Info("notification dispatch attempted",
		"attempt", attemptID,
		"destination", destination,
	)

	name, args := openCommand(target)
	if err := d.run(name, args...); err != nil {
		d.logger.Error("notification dispatch failed",
			"attempt", attemptID,
			"destination", destination,
			"error", err,
		)
	}
}

// openCommand picks the platform opener for a URL intent.
func openCommand(target string) (string, []string) {
	switch runtime.GOOS {
	case "android":
		return "am", []string{"start", "-a", "android.intent.action.VIEW", "-d", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}
