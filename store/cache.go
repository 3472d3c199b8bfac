package store

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tikz/secstruct/reference"
)

const fileExt = ".data"

// Cache keeps downloaded reference tables on disk as gob files.
type Cache struct {
	dir string
}

// NewCache creates the cache directory if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func generateID(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(url string) string {
	return filepath.Join(c.dir, generateID(url)+fileExt)
}

// LoadReference returns the table at url, downloading it only on the first call.
func (c *Cache) LoadReference(ctx context.Context, url string) (*reference.Table, error) {
	path := c.path(url)

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		log.Printf("[store] fetching reference table %s", url)
		t, err := reference.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		if err := write(path, t); err != nil {
			return nil, fmt.Errorf("write reference cache: %w", err)
		}
		return t, nil
	}

	t := new(reference.Table)
	if err := read(path, t); err != nil {
		return nil, fmt.Errorf("load file: %w", err)
	}
	return t, nil
}

// Forget drops the cached copy of url.
func (c *Cache) Forget(url string) error {
	err := os.Remove(c.path(url))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func write(filePath string, object interface{}) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(file).Encode(object); err != nil {
		file.Close()
		os.Remove(filePath)
		return err
	}

	return file.Close()
}

func read(filePath string, object interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(object)
}
