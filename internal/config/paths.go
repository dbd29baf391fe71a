// Package config resolves stubrun's data directory and pipeline definitions.
package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory used to store stubrun data. The STUBRUN_HOME
// environment variable overrides the default dot-directory in the user home.
func DataDir() (string, error) {
	if d := os.Getenv("STUBRUN_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stubrun"), nil
}

// DBPath returns the full path to the SQLite history database file.
func DBPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "stubrun.db"), nil
}

// DefaultBaseDir returns the directory the built-in pipeline resolves its
// step directories against: the parent of the directory holding the stubrun
// executable, so a binary installed under <repo>/scripts finds the generator
// directories at the repository root.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
