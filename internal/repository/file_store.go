package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 50 * time.Millisecond

// fileBlobs keeps each document in <dir>/<key>.json. Writers take an
// in-process mutex and a flock on <key>.json.lock, and replace the file
// through a rename so readers never see a partial document.
type fileBlobs struct {
	dir string
	mu  sync.Mutex
}

func newFileBlobs(dir string) (*fileBlobs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileBlobs{dir: dir}, nil
}

func (f *fileBlobs) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileBlobs) Read(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

func (f *fileBlobs) Mutate(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	lock := flock.New(f.path(key) + ".lock")
	locked, err := lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: not acquired", key)
	}
	defer func() { _ = lock.Unlock() }()

	cur, err := f.Read(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil || next == nil {
		return err
	}
	return writeAtomic(f.path(key), next)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (f *fileBlobs) Close() error { return nil }
