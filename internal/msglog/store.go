// Package msglog persists caller messages as append-only text files, grouped
// by day and call identifier.
package msglog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store appends message records under <dir>/<YYYY-MM-DD>/<callID>.txt.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a message log rooted at dir. The directory tree is created
// lazily on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Append writes one message record and returns the path it was written to.
func (s *Store) Append(ctx context.Context, callID, fromNumber, transcript string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	dayDir := filepath.Join(s.dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return "", fmt.Errorf("msglog: create day directory: %w", err)
	}

	path := filepath.Join(dayDir, callID+".txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("msglog: open message file: %w", err)
	}
	defer f.Close()

	record := fmt.Sprintf("[%s] FROM %s\n%s\n---\n", now.Format(time.RFC3339), fromNumber, transcript)
	if _, err := f.WriteString(record); err != nil {
		return "", fmt.Errorf("msglog: append message: %w", err)
	}
	return path, nil
}
