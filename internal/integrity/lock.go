package integrity

import (
	"os"
	"path/filepath"
	"syscall"
)

// Lock is an advisory exclusive lock held over a lockfile path for the
// duration of a package operation's mutation (spec.md §5's "one
// unavoidable process-wide resource"). It wraps a real OS file — afero's
// in-memory backends have no file descriptor to flock, and this lock is
// about cross-process mutual exclusion on real disk, not about the
// filesystem abstraction the rest of this package is tested against.
type Lock struct {
	file *os.File
	path string
}

// AcquireLock creates (or opens) a `.lock` file alongside lockfilePath
// and takes a non-blocking exclusive flock on it. It returns ErrLockHeld
// if another process already holds it.
func AcquireLock(lockfilePath string) (*Lock, error) {
	path := lockfilePath + ".lock"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, ErrLockHeld
		}
		return nil, err
	}

	return &Lock{file: file, path: path}, nil
}

// Release drops the flock and closes the underlying file. The lock file
// itself is left on disk; its presence is not the lock, the flock is.
func (l *Lock) Release() error {
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
