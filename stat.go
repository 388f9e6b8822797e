package axiomfs

import (
	"time"

	"github.com/google/uuid"
)

// Stat summarizes a file system.
type Stat struct {
	VolumeName string
	VolumeID   uuid.UUID
	Created    time.Time
	Version    string

	BlockCount     uint32
	UsedBlockCount uint32
	FreeBlockCount uint32
}

// Size returns the usable size in bytes, a trailing partial block is not included.
func (s Stat) Size() int64 {
	return int64(s.BlockCount) * BlockSize
}

// FreeSize returns the size of all free blocks in bytes.
func (s Stat) FreeSize() int64 {
	return int64(s.FreeBlockCount) * BlockSize
}

// HasVolumeID is false for images formatted without a volume ID.
func (s Stat) HasVolumeID() bool {
	return s.VolumeID != uuid.Nil
}

// Stat reads the header and summarizes it.
func (fs *FileSystem) Stat() (Stat, error) {
	h, err := fs.Header()
	if err != nil {
		return Stat{}, err
	}

	return Stat{
		VolumeName:     h.Name(),
		VolumeID:       uuid.UUID(h.VolumeID),
		Created:        h.Created(),
		Version:        h.Version(),
		BlockCount:     h.BlockCount,
		UsedBlockCount: h.UsedBlockCount,
		FreeBlockCount: h.FreeBlockCount,
	}, nil
}
