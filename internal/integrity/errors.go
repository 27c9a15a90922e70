package integrity

import "errors"

var (
	// ErrLockfileNotFound is returned when the lockfile path does not exist.
	ErrLockfileNotFound = errors.New("integrity: lockfile not found")

	// ErrLockfileCorrupt is returned when the lockfile is not valid JSON
	// once its comment header is stripped, or its version field is
	// missing. An unrecognized version is ErrUnsupportedVersion.
	ErrLockfileCorrupt = errors.New("integrity: lockfile corrupt")

	// ErrUnsupportedVersion is returned for a lockfile version field this
	// package does not know how to read.
	ErrUnsupportedVersion = errors.New("integrity: unsupported lockfile version")

	// ErrNotInstalled is the per-entry status when a lock entry names a
	// plugin directory that is absent from disk.
	ErrNotInstalled = errors.New("integrity: plugin not installed")

	// ErrIntegrityMismatch is the per-entry status when a plugin
	// directory's recomputed hash disagrees with its pinned lock entry.
	ErrIntegrityMismatch = errors.New("integrity: content hash mismatch")

	// ErrLockHeld is returned by AcquireLock when another process already
	// holds the advisory lock.
	ErrLockHeld = errors.New("integrity: lockfile is held by another process")

	// ErrPackCorrupt is returned when a pack file cannot be parsed.
	ErrPackCorrupt = errors.New("integrity: pack file corrupt")
)
