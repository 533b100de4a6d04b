package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Store implements ports.ResultStore using the local filesystem.
// Each result is a JSON file named after the hash of its key, since keys
// carry raw tape contents.
type Store struct {
	BasePath string
}

type entry struct {
	Key    string         `json:"key"`
	Result *domain.Result `json:"result"`
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".tmsim/results".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".tmsim", "results")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.BasePath, hex.EncodeToString(sum[:])+".json")
}

// Save persists the result to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, key string, res *domain.Result) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure result directory: %w", err)
	}

	data, err := json.MarshalIndent(entry{Key: key, Result: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // No-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(key)
	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing result for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves a result from its JSON file.
func (s *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	e, err := s.read(s.path(key))
	if err != nil {
		return nil, err
	}
	if e.Key != key {
		return nil, domain.ErrResultNotFound
	}
	return e.Result, nil
}

func (s *Store) read(path string) (*entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	if e.Result == nil {
		return nil, domain.ErrResultNotFound
	}
	return &e, nil
}

// Delete removes the result file.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete result file: %w", err)
	}
	return nil
}

// List returns every stored key, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	var keys []string
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		e, err := s.read(filepath.Join(s.BasePath, name))
		if err != nil {
			continue
		}
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys, nil
}
