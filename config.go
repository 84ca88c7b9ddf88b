package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const dbEnvVar = "THEGRID_DB"

// DefaultDBPath resolves the profile database location.
// Respects THEGRID_DB, then XDG_DATA_HOME, then ~/.local/share.
func DefaultDBPath() string {
	if p := os.Getenv(dbEnvVar); p != "" {
		return p
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(base, "thegrid", "thegrid.db")
}

func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
