package storage

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes photos under a directory served at /uploads.
type LocalStorage struct {
	dir string
}

func NewLocal(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	data, name, err := processUpload(fh)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	return "/uploads/" + name, nil
}

func (s *LocalStorage) Remove(ctx context.Context, path string) error {
	name := strings.TrimPrefix(path, "/uploads/")
	if name == "" || strings.Contains(name, "/") {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
