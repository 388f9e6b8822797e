//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package axiomfs

import (
	"os"
)

// Images always get buffered on this platform.
func mapFile(_ *os.File, _ int) ([]byte, error) {
	return nil, errMapUnsupported
}

func syncMapping(_ []byte) error {
	return errMapUnsupported
}

func unmapFile(_ []byte) error {
	return errMapUnsupported
}
