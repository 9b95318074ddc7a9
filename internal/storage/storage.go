package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	OriginalsPrefix = "originals"
	OptimizedPrefix = "optimized"
)

var ErrInvalidKey = errors.New("storage: invalid key")

// Store is the durable blob store behind the media pipeline. Keys are
// slash-separated relative paths ("originals/<id>.jpg").
type Store interface {
	Write(key string, data []byte) error
	Read(key string) ([]byte, error)
	Remove(key string) error
	// Abs resolves a key to a local filesystem path for codec invocation.
	Abs(key string) string
}

// DiskStore keeps blobs under a single root directory on local disk.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage: empty root")
	}
	for _, prefix := range []string{OriginalsPrefix, OptimizedPrefix} {
		if err := os.MkdirAll(filepath.Join(root, prefix), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", prefix, err)
		}
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, clean), nil
}

func (s *DiskStore) Write(key string, data []byte) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *DiskStore) Read(key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s *DiskStore) Remove(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DiskStore) Abs(key string) string {
	path, err := s.resolve(key)
	if err != nil {
		return ""
	}
	return path
}
