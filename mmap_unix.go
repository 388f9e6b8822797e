//go:build linux || darwin || freebsd || netbsd || openbsd

package axiomfs

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/axiomfs/axiomfs/checkpoint"
)

// mapFile creates a shared, writable mapping of the first size bytes of f.
func mapFile(f *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if errors.Is(err, unix.ENOMEM) {
			return nil, checkpoint.Wrap(err, ErrAllocation)
		}
		return nil, checkpoint.Wrap(err, ErrIO)
	}
	return data, nil
}

func syncMapping(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
