package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/2beens/gymlog/pkg"
)

var _ KV = (*FileKV)(nil)

// FileKV keeps one JSON file per key in a data directory.
type FileKV struct {
	root string
	mu   sync.RWMutex
}

func NewFileKV(root string) (*FileKV, error) {
	exists, err := pkg.PathExists(root, true)
	if err != nil {
		return nil, fmt.Errorf("check data dir: %w", err)
	}
	if !exists {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	return &FileKV{root: root}, nil
}

func (s *FileKV) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

func (s *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the file atomically: write to a temp file, then rename.
func (s *FileKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}

	return nil
}
