package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// Locker serializes writers of the same changelog file across processes.
type Locker interface {
	// Lock takes an exclusive lock guarding path and returns its release function.
	Lock(ctx context.Context, path string) (func() error, error)
}

// fileLocker implements Locker with flock files kept outside the working tree.
type fileLocker struct {
	dir     string
	timeout time.Duration
}

// NewFileLocker creates a Locker backed by advisory file locks in the temp directory.
func NewFileLocker() Locker {
	return &fileLocker{dir: os.TempDir(), timeout: LockTimeout}
}

// Lock acquires the lock file for path, waiting at most the locker timeout.
func (l *fileLocker) Lock(ctx context.Context, path string) (func() error, error) {
	lockFile, err := l.lockFilename(path)
	if err != nil {
		return nil, err
	}
	lock := flock.New(lockFile)
	lockCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock for %s within timeout", path)
	}
	return lock.Unlock, nil
}

// lockFilename maps path to a stable lock file so every spelling of it shares one lock.
func (l *fileLocker) lockFilename(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(l.dir, fmt.Sprintf("changelog-range-%s.lock", hex.EncodeToString(sum[:8]))), nil
}

// acquireLockWithContext attempts to acquire an exclusive lock with context support
func acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	if locked, err := lock.TryLock(); err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}
