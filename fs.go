package axiomfs

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/axiomfs/axiomfs/checkpoint"
)

// Replaced in tests.
var (
	timeNow     = time.Now
	newVolumeID = uuid.New
)

// FileSystem is a handle to the file system inside of an image.
// It only references the image and never owns it, so it must be closed before the image.
type FileSystem struct {
	image Region
}

// IsValid reports whether r already contains an AxiomFS file system.
// It checks the magic, the version and whether used and free blocks add up to the block count.
// It never modifies r, so it is safe on images of unknown content. Images smaller than
// MinImageSize are never valid, neither are nil or closed images.
func IsValid(r Region) bool {
	if !usable(r) {
		return false
	}

	h, err := ReadHeader(r)
	if err == nil {
		err = h.Validate()
	}

	if err != nil {
		log.WithFields(log.Fields{"image": r.Name(), "reason": err}).Debug("no valid file system")
		return false
	}
	return true
}

// Format writes a fresh header to r and discards everything stored in the header block before.
// The whole region is divided into BlockSize blocks, a trailing partial block is not counted.
// The boot and the header block are marked as used.
// If volumeName is empty DefaultVolumeName is used, names longer than VolumeNameSize-1
// bytes get truncated.
func Format(r Region, volumeName string) error {
	data := r.Bytes()
	if len(data) < MinImageSize {
		return checkpoint.From(fmt.Errorf("%w: got %d bytes", ErrImageTooSmall, len(data)))
	}

	blockCount := uint64(len(data) / BlockSize)
	if blockCount > math.MaxUint32 {
		return checkpoint.From(fmt.Errorf("%w: %d blocks do not fit into the header", ErrInvalidFormat, blockCount))
	}

	if volumeName == "" {
		volumeName = DefaultVolumeName
	}

	h := Header{
		Magic:          Magic,
		MajorVersion:   MajorVersion,
		MinorVersion:   MinorVersion,
		CreationTime:   unixSeconds(timeNow()),
		BlockCount:     uint32(blockCount),
		UsedBlockCount: ReservedBlocks,
		FreeBlockCount: uint32(blockCount) - ReservedBlocks,
		VolumeID:       newVolumeID(),
	}
	h.SetVolumeName(volumeName)

	clear(data[HeaderOffset : HeaderOffset+BlockSize])
	if err := WriteHeader(r, &h); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"image":  r.Name(),
		"volume": h.Name(),
		"blocks": h.BlockCount,
	}).Debug("formatted image")
	return nil
}

// Open creates a handle to the file system in r.
// It does not validate anything, use IsValid before or after opening.
func Open(r Region) (*FileSystem, error) {
	if !usable(r) {
		return nil, checkpoint.From(ErrClosed)
	}

	return &FileSystem{image: r}, nil
}

// usable reports whether r is neither nil nor a nil or closed *Image.
func usable(r Region) bool {
	if r == nil {
		return false
	}
	if img, ok := r.(*Image); ok && (img == nil || img.closed) {
		return false
	}
	return true
}

// Image returns the region the file system lives in.
func (fs *FileSystem) Image() Region {
	return fs.image
}

// Header reads the current header.
func (fs *FileSystem) Header() (Header, error) {
	if fs == nil || fs.image == nil {
		return Header{}, checkpoint.From(ErrClosed)
	}
	return ReadHeader(fs.image)
}

// UpdateHeader reads the header, passes it to update and writes it back
// if update does not return an error.
func (fs *FileSystem) UpdateHeader(update func(h *Header) error) error {
	h, err := fs.Header()
	if err != nil {
		return err
	}

	if err := update(&h); err != nil {
		return err
	}

	return WriteHeader(fs.image, &h)
}

// Close releases the handle. The image stays open.
// Closing a nil or already closed handle returns ErrClosed.
func (fs *FileSystem) Close() error {
	if fs == nil || fs.image == nil {
		return checkpoint.From(ErrClosed)
	}

	fs.image = nil
	return nil
}
