package axiomfs

import (
	"errors"
	"fmt"
)

// These errors may occur while handling an image or its file system.
var (
	ErrIO             = errors.New("image i/o failed")
	ErrInvalidFormat  = errors.New("no valid AxiomFS file system")
	ErrNotRegularFile = errors.New("image is not a regular file")
	ErrAllocation     = errors.New("could not allocate memory for the image")
	ErrClosed         = errors.New("already closed")

	ErrImageTooSmall      = fmt.Errorf("%w: image smaller than %d bytes", ErrInvalidFormat, MinImageSize)
	ErrBadMagic           = fmt.Errorf("%w: bad magic", ErrInvalidFormat)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrInvalidFormat)
	ErrBlockCountMismatch = fmt.Errorf("%w: used and free blocks do not add up to the block count", ErrInvalidFormat)
)

// ErrorKind is the closed set of failure classes callers can branch on
// without looking at raw system errors.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindIO
	KindInvalidFormat
	KindNotRegularFile
	KindAllocation
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindNotRegularFile:
		return "NotRegularFile"
	case KindAllocation:
		return "AllocationFailure"
	default:
		return "Unknown"
	}
}

// KindOf classifies err. ErrClosed and foreign errors are KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotRegularFile):
		return KindNotRegularFile
	case errors.Is(err, ErrAllocation):
		return KindAllocation
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
