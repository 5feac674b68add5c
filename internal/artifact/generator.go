// Package artifact turns short text payloads into scannable QR images.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// ArtifactWriteError means the code image could not be written. The record
// the payload came from stays fully usable.
type ArtifactWriteError struct {
	Path string
	Err  error
}

func (e *ArtifactWriteError) Error() string {
	return fmt.Sprintf("cannot write code artifact to %s", e.Path)
}

func (e *ArtifactWriteError) Unwrap() error {
	return e.Err
}

// Generator writes QR images under a fixed application-private directory.
type Generator struct {
	dir    string
	logger *slog.Logger
}

// NewGenerator creates a generator rooted at dir. The directory is created
// lazily on the first Generate call.
func NewGenerator(dir string, logger *slog.Logger) *Generator {
	return &Generator{dir: dir, logger: logger}
}

// Generate encodes payload into a PNG named after targetName and returns
// the full path. Repeated calls regenerate the file; nothing is cached.
func (g *Generator) Generate(payload, targetName string) (string, error) {
	filename := sanitizeName(targetName)
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		g.logger.Error("artifact directory not writable", "dir", g.dir, "error", err)
		return "", &ArtifactWriteError{Path: g.dir, Err: err}
	}

	fullPath := filepath.Join(g.dir, filename)
	if err := qrcode.WriteFile(payload, qrcode.Medium, imageSize, fullPath); err != nil {
		g.logger.Error("artifact write failed", "path", fullPath, "error", err)
		return "", &ArtifactWriteError{Path: fullPath, Err: err}
	}
	return fullPath, nil
}

// sanitizeName strips path separators so a display name can never escape
// the artifact directory.
func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "record"
	}
	return cleaned
}
