package storage

import (
	"io"
	"os"
	"path/filepath"
)

type FileStorage interface {
	Save(path string, data io.Reader) (int64, error)
	Get(path string) (io.ReadCloser, error)
	Delete(path string) error
	Exists(path string) bool
	FullPath(path string) string
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

// Save writes data to a temporary file next to the target and renames it into
// place, so readers never observe a partially written file.
func (s *fileStorage) Save(path string, data io.Reader) (int64, error) {
	fullPath := s.FullPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, err
	}

	file, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return 0, err
	}
	tmpPath := file.Name()

	n, err := io.Copy(file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return n, err
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return n, err
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return n, err
	}
	return n, nil
}

func (s *fileStorage) Get(path string) (io.ReadCloser, error) {
	return os.Open(s.FullPath(path))
}

func (s *fileStorage) Delete(path string) error {
	return os.Remove(s.FullPath(path))
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(s.FullPath(path))
	return !os.IsNotExist(err)
}

func (s *fileStorage) FullPath(path string) string {
	return filepath.Join(s.basePath, path)
}
