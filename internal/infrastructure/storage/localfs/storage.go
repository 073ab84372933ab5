// Package localfs is a filesystem-backed file store for development and
// tests. Production deployments use the OneDrive store instead.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) Save(_ context.Context, path string, data io.Reader) error {
	full := filepath.Join(s.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Storage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *Storage) Exists(_ context.Context, folder, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(folder), filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat file: %w", err)
}

func (s *Storage) EnsureFolder(_ context.Context, folder string) error {
	if err := os.MkdirAll(filepath.Join(s.basePath, filepath.FromSlash(folder)), 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

func (s *Storage) ShareLink(_ context.Context, path string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.basePath, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
