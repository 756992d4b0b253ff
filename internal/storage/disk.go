package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes photos into a configured upload directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
