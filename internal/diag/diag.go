// Package diag provides the append-only diagnostic log every core
// component writes its failures to.
package diag

import (
	"fmt"
	"log/slog"
	"os"
)

// Open returns a structured logger appending to the file at path, and a
// close function for the underlying file handle.
func Open(path string) (*slog.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open diagnostic log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, nil))
	return logger, file.Close, nil
}
