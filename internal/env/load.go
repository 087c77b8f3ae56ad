// Package env loads dotenv files before command line parsing.
package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Load reads the given dotenv files, or ".env" when none are given, into the
// process environment. Variables already set are kept. Missing files are not an error.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
