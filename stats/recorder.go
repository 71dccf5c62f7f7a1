package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Recorder appends run entries to the local NDJSON history file.
type Recorder struct {
	dataDir   string
	statsPath string
	lockPath  string
}

// NewRecorder creates a Recorder that writes to the history file inside dataDir.
func NewRecorder(dataDir string) *Recorder {
	return &Recorder{
		dataDir:   dataDir,
		statsPath: StatsPath(dataDir),
		lockPath:  LockPath(dataDir),
	}
}

// Path returns the history file written by r.
func (r *Recorder) Path() string {
	return r.statsPath
}

// Record appends one entry to the history file, creating the data dir when
// needed. The write is protected by a file lock for cross-process safety.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("stats: marshal entry: %w", err)
	}
	line = append(line, '\n')

	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return fmt.Errorf("stats: create data dir: %w", err)
	}

	lockFile, err := os.OpenFile(r.lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		// Proceed without locking rather than failing the caller.
		return r.appendLine(line)
	}
	defer lockFile.Close()

	if err := flockExclusive(lockFile); err != nil {
		return r.appendLine(line)
	}
	defer func() { _ = funlock(lockFile) }()

	return r.appendLine(line)
}

func (r *Recorder) appendLine(line []byte) error {
	f, err := os.OpenFile(r.statsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("stats: open file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("stats: append: %w", err)
	}
	return nil
}
