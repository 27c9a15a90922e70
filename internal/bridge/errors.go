package bridge

import "errors"

var (
	// ErrUnknownCapability is returned by Dispatch/Call for a callee name
	// not present in the capability table.
	ErrUnknownCapability = errors.New("bridge: unknown capability")

	// ErrInvalidArgument is returned when a capability's argument string
	// cannot be parsed into the shape that capability expects.
	ErrInvalidArgument = errors.New("bridge: invalid argument")

	// ErrBookmarkNotFound is returned by Jump/Unpin for an unknown name.
	ErrBookmarkNotFound = errors.New("bridge: bookmark not found")

	// ErrNoRepository is returned by git capabilities when the bridge was
	// constructed without a detected working tree.
	ErrNoRepository = errors.New("bridge: no git repository")
)
