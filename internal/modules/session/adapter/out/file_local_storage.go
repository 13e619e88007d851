package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	sessionout "teamboard/internal/modules/session/port/out"
)

// FileLocalStorage keeps entries as one JSON object on disk.
type FileLocalStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileLocalStorage(path string) *FileLocalStorage {
	return &FileLocalStorage{path: path}
}

var errCorruptStorage = errors.New("corrupt storage file")

var _ sessionout.LocalStorage = (*FileLocalStorage)(nil)

func (s *FileLocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (s *FileLocalStorage) SetAll(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.load()
	if errors.Is(err, errCorruptStorage) {
		// A fresh sign-in replaces an unreadable file instead of failing on it.
		slog.Warn("discarding unreadable session storage", "path", s.path, "err", err)
		current, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	for key, value := range entries {
		current[key] = value
	}
	return s.write(current)
}

func (s *FileLocalStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}

func (s *FileLocalStorage) load() (map[string]string, error) {
	entries := map[string]string{}
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode storage: %w: %w", errCorruptStorage, err)
	}
	return entries, nil
}

// write replaces the file atomically so token and user never diverge on disk.
func (s *FileLocalStorage) write(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace storage: %w", err)
	}
	return nil
}
