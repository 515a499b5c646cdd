package assets

import (
	"os"
	"path/filepath"
)

// Store persists generated image bytes under slash-separated relative
// paths. The path doubles as the imageUrl recorded on menu items.
type Store interface {
	Put(relPath string, data []byte) error
}

// LocalStore writes assets beneath a root directory on the local
// filesystem, creating parent directories as needed.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Put(relPath string, data []byte) error {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
