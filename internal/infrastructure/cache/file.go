package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/autoparts-ledger/internal/domain/repository"
)

var _ repository.LocalCache = (*FileCache)(nil)

// FileCache guarda cada colección como <dir>/<key>.json. Sobrevive reinicios sin Redis.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// NewFileCache crea el directorio si no existe.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de caché: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (f *FileCache) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileCache) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer caché %s: %w", key, err)
	}
	return data, nil
}

// Save escribe a un temporal y renombra, para no dejar un arreglo truncado si el proceso muere.
func (f *FileCache) Save(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir caché %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("escribir caché %s: %w", key, err)
	}
	return nil
}
