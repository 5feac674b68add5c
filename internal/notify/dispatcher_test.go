package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendInvokesRunnerWithEncodedMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var gotName string
	var gotArgs []string
	calls := 0
	d := NewDispatcherWithRunner(logger, func(name string, args ...string) error {
		calls++
		gotName = name
		gotArgs = args
		return nil
	})

	d.Send("911234567890", "EMERGENCY: Patient Bob needs attention")

	require.Equal(t, 1, calls)
	assert.NotEmpty(t, gotName)

	joined := strings.Join(gotArgs, " ")
	assert.Contains(t, joined, "wa.me/911234567890")
	assert.Contains(t, joined, "EMERGENCY%3A+Patient+Bob+needs+attention")
	assert.Contains(t, buf.String(), "notification dispatch attempted")
}

func TestExecRunnerStartsAndReapsCommand(t *testing.T) {
	require.NoError(t, execRunner("true"))

	err := execRunner("definitely-not-a-real-command-xyz")
	assert.Error(t, err)
}

func TestSendLogsAttemptBeforeFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	d := NewDispatcherWithRunner(logger, func(name string, args ...string) error {
		return errors.New("no handler installed")
	})

	// Must not panic or return anything; the failure is only logged.
	d.Send("911234567890", "hello")

	logged := buf.String()
	assert.Contains(t, logged, "notification dispatch attempted")
	assert.Contains(t, logged, "notification dispatch failed")
	assert.Contains(t, logged, "no handler installed")
}
