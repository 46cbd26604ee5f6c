package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

// File stores all keys in one JSON document readable only by the owner.
// Writes go to a temporary file that is renamed over the original.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File backend at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.NewStoreReadError(f.path, err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.NewStoreReadError(f.path, err)
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.NewStoreWriteError(f.path, err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.NewStoreWriteError(f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*")
	if err != nil {
		return errors.NewStoreWriteError(f.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.NewStoreWriteError(f.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewStoreWriteError(f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreWriteError(f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return errors.NewStoreWriteError(f.path, fmt.Errorf("rename: %w", err))
	}
	return nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) Location() string { return f.path }

func (f *File) Close() error { return nil }
