package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/resume-goat/resume-goat/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func (o *options) withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(o.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// tokenFilePath keeps the dashboard token alongside the database.
func (o *options) tokenFilePath() string {
	return filepath.Join(filepath.Dir(o.cfg.DBPath), ".rgoat-token")
}

func experimentError(name string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("experiment '%s' not found", name)
	}
	return fmt.Errorf("failed to get experiment: %w", err)
}
