package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStore struct {
	Root    string // directory on disk
	URLBase string // public prefix, e.g. "/uploads"
}

func NewLocalStore(root, urlBase string) *LocalStore {
	return &LocalStore{
		Root:    root,
		URLBase: "/" + strings.Trim(urlBase, "/"),
	}
}

func (s *LocalStore) Put(ctx context.Context, dir, name string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir = strings.Trim(path.Clean("/"+dir), "/")
	full := filepath.Join(s.Root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", full, err)
	}
	if err := os.WriteFile(filepath.Join(full, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path.Join(s.URLBase, dir, name), nil
}

func (s *LocalStore) Delete(ctx context.Context, publicURL string) error {
	prefix := s.URLBase + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return nil
	}
	rel := path.Clean("/" + strings.TrimPrefix(publicURL, prefix))
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
