package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File keeps one <slot>.json file per slot in a directory.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir slot dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(slot string) (string, error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	if strings.ContainsAny(slot, `/\`) || slot == "." || slot == ".." {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(f.dir, slot+".json"), nil
}

func (f *File) Load(_ context.Context, slot string) ([]byte, error) {
	path, err := f.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *File) Save(_ context.Context, slot string, data []byte) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *File) Delete(_ context.Context, slot string) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *File) Slots(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("list slot dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (f *File) Close() error { return nil }
