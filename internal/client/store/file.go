package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps one file per key under dir. Keys are path-escaped so any
// string is a valid key.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	if err := fsys.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileStore{fs: fsys, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	b, err := afero.ReadFile(s.fs, s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return b, nil
}

// Set writes through a temp file and rename so a crash never leaves a
// half-written value behind.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	p := s.path(key)
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o660); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *FileStore) SetMany(ctx context.Context, values map[string][]byte) error {
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
