package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	defaultFileMode = 0o644
	dirMode         = 0o755
)

// FileStore keeps one file per identifier under a directory. A file's
// presence is the cache hit test.
type FileStore struct {
	dir      string
	fileMode os.FileMode
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{dir: dir, fileMode: defaultFileMode}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return s, nil
}

// Path returns the file that holds id.
func (s *FileStore) Path(id string) string {
	return filepath.Join(s.dir, "player_"+id+".json")
}

// Get reads the cached payload for id.
func (s *FileStore) Get(_ context.Context, id string) ([]byte, error) {
	if err := validateKey(id); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", id, err)
	}
	return raw, nil
}

// Put writes raw through a temporary file and a rename, so readers never see
// a partial payload. Two concurrent writers of one id race; the last rename
// wins.
func (s *FileStore) Put(_ context.Context, id string, raw []byte) error {
	if err := validateKey(id); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".player_"+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write cache %s: %w", id, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache %s: %w", id, err)
	}
	if err := tmp.Chmod(s.fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(id)); err != nil {
		return fmt.Errorf("write cache %s: %w", id, err)
	}
	return nil
}
