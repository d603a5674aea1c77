package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nchoi/atelier-backend/pkg/logger"
)

// fileStore keeps each slot as a JSON file under a data directory.
// Colons in keys become directory separators so namespaces stay browsable.
type fileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore opens (creating if needed) a file-backed store rooted at dir.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logger.Info("File store opened", map[string]interface{}{
		"dir": dir,
	})
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	parts := strings.Split(key, ":")
	return filepath.Join(s.dir, filepath.Join(parts...)+".json")
}

func (s *fileStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Write to a temp file then rename so a crash never leaves a torn slot.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *fileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *fileStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		key := strings.ReplaceAll(strings.TrimSuffix(rel, ".json"), string(filepath.Separator), ":")
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *fileStore) Close() error {
	return nil
}
