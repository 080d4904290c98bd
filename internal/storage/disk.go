// Package storage сохраняет загруженные подтверждения оплаты на диске.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStorage хранит файлы в локальной директории и отдаёт публичные URL
// относительно настроенного базового пути.
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage создаёт хранилище в указанной директории.
func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DiskStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save записывает содержимое r в новый файл и возвращает его публичный URL.
// Имя файла генерируется случайно; расширение берётся из исходного имени.
func (s *DiskStorage) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.baseURL + "/" + path.Base(name), nil
}

// Dir возвращает директорию хранилища для раздачи статики.
func (s *DiskStorage) Dir() string {
	return s.dir
}
