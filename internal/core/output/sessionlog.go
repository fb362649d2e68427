package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionLog is the per-session append-only text log. Append reads the
// whole file, concatenates, and rewrites it; that is only safe with a
// single writer, which is all the session loop ever has.
type SessionLog struct {
	path string
}

// NewSessionLog creates the log file under dir/logs and writes the
// session-start line.
func NewSessionLog(dir string) (*SessionLog, error) {
	path := filepath.Join(dir, LogsDir, fmt.Sprintf("session_%s.log", time.Now().Format("20060102_150405")))
	log := &SessionLog{path: path}
	if err := log.Append("session started"); err != nil {
		return nil, err
	}
	return log, nil
}

// Path returns the log file location.
func (l *SessionLog) Path() string {
	return l.path
}

// Append adds one timestamped line to the log.
func (l *SessionLog) Append(line string) error {
	existing, err := os.ReadFile(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read session log: %w", err)
	}

	stamped := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), line)
	if err := os.WriteFile(l.path, append(existing, stamped...), 0644); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}
