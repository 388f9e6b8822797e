package axiomfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/axiomfs/axiomfs/checkpoint"
)

// headerBytes returns the slice of the region which holds the header block.
func headerBytes(r Region) ([]byte, error) {
	data := r.Bytes()
	if len(data) < MinImageSize {
		return nil, checkpoint.From(fmt.Errorf("%w: got %d bytes", ErrImageTooSmall, len(data)))
	}
	return data[HeaderOffset : HeaderOffset+BlockSize], nil
}

// ReadHeader deserializes the header of the given region.
// It does not validate it, use Header.Validate for that.
func ReadHeader(r Region) (Header, error) {
	var h Header

	block, err := headerBytes(r)
	if err != nil {
		return h, err
	}

	err = binary.Read(bytes.NewReader(block[:headerSize]), binary.LittleEndian, &h)
	if err != nil {
		return h, checkpoint.Wrap(err, ErrIO)
	}

	return h, nil
}

// WriteHeader serializes h into the header block of the given region.
// Bytes of the header block behind the header itself are left untouched.
func WriteHeader(r Region, h *Header) error {
	block, err := headerBytes(r)
	if err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize))
	err = binary.Write(buf, binary.LittleEndian, h)
	if err != nil {
		return checkpoint.Wrap(err, ErrIO)
	}

	copy(block, buf.Bytes())
	return nil
}

// Validate checks the magic, then the version, then the block accounting.
// It returns the first failing check as ErrBadMagic, ErrUnsupportedVersion or ErrBlockCountMismatch.
func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: %q", ErrBadMagic, h.Magic[:])
	}

	if h.MajorVersion != MajorVersion || h.MinorVersion != MinorVersion {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.Version())
	}

	// Sum in 64 bit so that two huge counts cannot wrap around to BlockCount.
	if uint64(h.UsedBlockCount)+uint64(h.FreeBlockCount) != uint64(h.BlockCount) {
		return fmt.Errorf("%w: %d + %d != %d", ErrBlockCountMismatch, h.UsedBlockCount, h.FreeBlockCount, h.BlockCount)
	}

	return nil
}

// Name returns the volume name up to the first zero byte.
func (h Header) Name() string {
	if i := bytes.IndexByte(h.VolumeName[:], 0); i >= 0 {
		return string(h.VolumeName[:i])
	}
	return string(h.VolumeName[:])
}

// SetVolumeName replaces the volume name.
// Names longer than VolumeNameSize-1 bytes get cut at the last complete UTF-8 character
// that fits, so the field always stays zero terminated. Names which are no valid UTF-8
// around the cut are cut at exactly VolumeNameSize-1 bytes.
func (h *Header) SetVolumeName(name string) {
	h.VolumeName = [VolumeNameSize]byte{}

	if len(name) > VolumeNameSize-1 {
		name = name[:nameCut(name)]
	}

	copy(h.VolumeName[:], name)
}

// nameCut returns the length name gets cut to. A rune start is searched
// at most utf8.UTFMax-1 bytes before the limit.
func nameCut(name string) int {
	limit := VolumeNameSize - 1
	for cut := limit; cut > limit-utf8.UTFMax; cut-- {
		if utf8.RuneStart(name[cut]) {
			return cut
		}
	}
	return limit
}

// Created returns the creation time in the local time zone.
func (h Header) Created() time.Time {
	return fromUnixSeconds(h.CreationTime)
}

// Version returns "major.minor".
func (h Header) Version() string {
	return fmt.Sprintf("%d.%d", h.MajorVersion, h.MinorVersion)
}
