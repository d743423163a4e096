// Package storage holds uploaded files for the duration of one fill run.
// Uploads are spooled to a scoped directory and removed when the run
// finishes; nothing persists between invocations.
package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Spool is a scratch directory for in-flight uploads.
type Spool struct {
	dir string
}

// NewSpool creates the spool directory if needed.
func NewSpool(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create spool directory %s: %w", dir, err)
	}
	return &Spool{dir: dir}, nil
}

// Save writes the stream to a uniquely named file in the spool and returns
// its path. The caller owns the file and discards it after the run.
func (s *Spool) Save(pattern string, r io.Reader) (string, error) {
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create spool file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write spool file %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// Discard removes a spooled file. Removal failures are logged, not
// returned; a leaked temp file must not fail the run that produced it.
func (s *Spool) Discard(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove spooled upload")
	}
}
