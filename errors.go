package fatmod

import "errors"

// These errors may occur while accessing a volume. Deeper causes are
// attached via checkpoint, so errors.Is works against all of them.
var (
	ErrOpen            = errors.New("could not open the disk image")
	ErrShortIO         = errors.New("could not read the full sector or cluster")
	ErrWrite           = errors.New("could not write to the disk image")
	ErrInvalidGeometry = errors.New("could not parse the boot sector")
	ErrInvalidName     = errors.New("invalid file name, must fit the 8.3 format")
	ErrInvalidOffset   = errors.New("offset is past the end of the file")
	ErrNotFound        = errors.New("no such file in the root directory")
	ErrAlreadyExists   = errors.New("a file with that name already exists")
	ErrDirectoryFull   = errors.New("no free slot in the root directory")
	ErrNoSpace         = errors.New("no free cluster left on the volume")
	ErrBadChain        = errors.New("the cluster chain is corrupt")
)
