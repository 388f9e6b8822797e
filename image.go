package axiomfs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/axiomfs/axiomfs/checkpoint"
)

// errMapUnsupported is returned by mapFile on platforms without shared memory mappings.
var errMapUnsupported = errors.New("memory mapping not supported")

// Image is the whole byte region of one file system.
// It is either a shared memory mapping of the image file or, if the file cannot
// be mapped, a buffer which gets written back on Sync and Close.
// An Image must not be used after Close.
type Image struct {
	name string
	data []byte

	// file is only kept by buffered images. A mapping does not need the descriptor.
	file   afero.File
	mapped bool
	closed bool
}

// OpenImage opens and maps the image file at path from the OS filesystem.
func OpenImage(path string) (*Image, error) {
	return OpenImageFs(afero.NewOsFs(), path)
}

// OpenImageFs opens the image file at path read/write and maps its full length.
// Only regular files are accepted, anything else results in ErrNotRegularFile.
// Nothing stays acquired if an error is returned.
func OpenImageFs(fsys afero.Fs, path string) (*Image, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}
	if !info.Mode().IsRegular() {
		return nil, checkpoint.From(fmt.Errorf("%w: %s has mode %v", ErrNotRegularFile, path, info.Mode()))
	}

	file, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	img, err := load(file, path)
	if err != nil {
		if !img.isMapped() {
			err = multierr.Append(err, file.Close())
		}
		return nil, err
	}

	return img, nil
}

// load creates the Image from the already opened file.
// On success a mapped Image has closed file, a buffered Image owns it.
// On error file is still open unless the returned Image is mapped.
func load(file afero.File, path string) (*Image, error) {
	// Check again on the opened file, path may have been replaced in between.
	info, err := file.Stat()
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}
	if !info.Mode().IsRegular() {
		return nil, checkpoint.From(fmt.Errorf("%w: %s has mode %v", ErrNotRegularFile, path, info.Mode()))
	}

	size := info.Size()
	if size == 0 {
		return nil, checkpoint.From(fmt.Errorf("%w: %s is empty and cannot be mapped", ErrIO, path))
	}
	if size < 0 || size > math.MaxInt {
		return nil, checkpoint.From(fmt.Errorf("%w: %s has %d bytes", ErrAllocation, path, size))
	}

	logger := log.WithFields(log.Fields{"image": path, "size": size})

	if osFile, ok := file.(*os.File); ok {
		data, err := mapFile(osFile, int(size))
		switch {
		case err == nil:
			img := &Image{name: path, data: data, mapped: true}

			// The mapping keeps the file referenced, the descriptor is not needed anymore.
			if err := file.Close(); err != nil {
				err = multierr.Append(checkpoint.Wrap(err, ErrIO), checkpoint.Wrap(unmapFile(data), ErrIO))
				return img, err
			}

			logger.Debug("mapped image")
			return img, nil
		case !errors.Is(err, errMapUnsupported):
			return nil, err
		}

		logger.Debug("memory mapping not supported, buffering image")
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, checkpoint.Wrap(err, ErrIO)
	}

	logger.Debug("buffered image")
	return &Image{name: path, data: data, file: file}, nil
}

func (img *Image) isMapped() bool {
	return img != nil && img.mapped
}

// Name returns the path the image was opened from.
func (img *Image) Name() string {
	return img.name
}

// Len returns the size of the image in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Bytes returns the whole image. Writes to it end up in the image file
// at the latest when the image gets synced or closed.
func (img *Image) Bytes() []byte {
	return img.data
}

// Sync synchronously writes all modifications back to the image file.
func (img *Image) Sync() error {
	if img == nil || img.closed {
		return checkpoint.From(ErrClosed)
	}
	return img.flush()
}

func (img *Image) flush() error {
	if img.mapped {
		return checkpoint.Wrap(syncMapping(img.data), ErrIO)
	}

	if _, err := img.file.WriteAt(img.data, 0); err != nil {
		return checkpoint.Wrap(err, ErrIO)
	}
	return checkpoint.Wrap(img.file.Sync(), ErrIO)
}

// Close flushes the image, releases the mapping (or closes the file of a buffered image)
// and drops all references. All steps are done even if one of them fails, the returned error
// contains every failure. Close is not retryable, a second call returns ErrClosed.
func (img *Image) Close() error {
	if img == nil || img.closed {
		return checkpoint.From(ErrClosed)
	}
	img.closed = true

	err := img.flush()
	if img.mapped {
		err = multierr.Append(err, checkpoint.Wrap(unmapFile(img.data), ErrIO))
	} else {
		err = multierr.Append(err, checkpoint.Wrap(img.file.Close(), ErrIO))
	}

	log.WithFields(log.Fields{"image": img.name, "error": err}).Debug("closed image")

	img.data = nil
	img.file = nil
	img.name = ""
	return err
}

// CreateImage creates a new, zero filled image file of size bytes.
// It fails if path already exists or size is smaller than MinImageSize.
// The image still has to be formatted.
func CreateImage(fsys afero.Fs, path string, size int64) error {
	if size < MinImageSize {
		return checkpoint.From(fmt.Errorf("%w: requested %d bytes", ErrImageTooSmall, size))
	}

	file, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return checkpoint.Wrap(err, ErrIO)
	}

	err = file.Truncate(size)
	if err == nil {
		err = file.Sync()
	}
	err = multierr.Append(err, file.Close())

	log.WithFields(log.Fields{"image": path, "size": size}).Debug("created image")
	return checkpoint.Wrap(err, ErrIO)
}
