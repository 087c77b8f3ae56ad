// Package journal appends timestamped process lines to a plain text file.
package journal

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "2006-01-02 15:04:05"

// Journal appends "[YYYY-MM-DD HH:MM:SS] message" lines to a file.
// A nil Journal or one with an empty path discards everything.
type Journal struct {
	now  func() time.Time
	path string
}

// New returns a journal writing to path.
func New(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}

	return j.path
}

// Printf formats and appends a line. Write failures are logged, not returned,
// so a broken journal never stops the caller.
func (j *Journal) Printf(format string, args ...any) {
	if err := j.Write(fmt.Sprintf(format, args...)); err != nil {
		log.Error().Err(err).Str("path", j.path).Msg("Failed to write journal")
	}
}

// Write appends one line. The file is opened and closed on every call.
func (j *Journal) Write(message string) (err error) {
	if j == nil || j.path == "" {
		return nil
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = fmt.Fprintf(f, "[%s] %s\n", j.now().Format(TimeFormat), message)

	return err
}
