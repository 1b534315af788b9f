package problems

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore reads the problem cache file on every lookup, so a cache that
// is rewritten by the fetcher is picked up without a restart. A ".zst"
// suffix selects zstd decompression.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() (*Document, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open problem cache %s: %w", f.path, err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	var doc Document
	if err := decode(file, filepath.Ext(f.path) == ".zst", &doc); err != nil {
		return nil, fmt.Errorf("failed to read problem cache %s: %w", f.path, err)
	}
	return &doc, nil
}

func (f *FileStore) Samples(_ context.Context, qkey string) ([]SampleCase, error) {
	doc, err := f.Load()
	if err != nil {
		return nil, err
	}
	p, ok := doc.Problems[qkey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, qkey)
	}
	return p.Samples, nil
}
