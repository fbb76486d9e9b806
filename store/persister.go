package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by a Persister when nothing has been saved under a key.
var ErrNotFound = errors.New("store document not found")

// Persister reads and overwrites one serialized document per key.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// FilePersister keeps each key as <Dir>/<key>.json.
type FilePersister struct {
	Dir string
}

func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{Dir: dir}
}

func (p *FilePersister) path(key string) string {
	return filepath.Join(p.Dir, key+".json")
}

func (p *FilePersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(p.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// previous copy so a crash never leaves a half-written document.
func (p *FilePersister) Save(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(p.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// MemoryPersister keeps documents in a map. Used in tests and when no
// durable backend is wanted.
type MemoryPersister struct {
	mu      sync.Mutex
	Docs    map[string][]byte
	SaveErr error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{Docs: map[string][]byte{}}
}

func (p *MemoryPersister) Load(ctx context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.Docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (p *MemoryPersister) Save(ctx context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.Docs[key] = append([]byte(nil), data...)
	return nil
}
