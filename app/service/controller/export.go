package controller

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	ExportFileName  = "respuestas_favoritas.txt"
	exportSeparator = "\n\n"
)

// ExportFavorites joins all favorites with a blank line between them.
func (s *Service) ExportFavorites() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.favorites) == 0 {
		return "", false
	}

	return strings.Join(s.favorites, exportSeparator), true
}

// WriteFavorites writes the exported favorites to dir and returns the file
// path. With no favorites nothing is written and the path is empty.
func (s *Service) WriteFavorites(dir string) (string, error) {
	blob, ok := s.ExportFavorites()
	if !ok {
		return "", nil
	}

	path := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		return "", fmt.Errorf("failed to write favorites: %w", err)
	}

	slog.Info("Exported favorites", "path", path)

	return path, nil
}
