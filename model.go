// File model contains the on-disk layout of an AxiomFS image.

package axiomfs

// Block 0 is the boot block, block 1 holds the Header.
// Both count as used on a freshly formatted image.
const (
	BlockSize      = 4096
	BootBlock      = 0
	HeaderBlock    = 1
	ReservedBlocks = 2

	HeaderOffset = HeaderBlock * BlockSize
	MinImageSize = ReservedBlocks * BlockSize

	VolumeNameSize = 1024
	VolumeIDSize   = 16

	MajorVersion = 0
	MinorVersion = 1

	DefaultVolumeName = "AxiomFS Volume"
)

// Magic identifies an AxiomFS image ("DN").
var Magic = [2]byte{'D', 'N'}

// Header is the global file system record stored at HeaderOffset.
// The fields are in on-disk order and get encoded little-endian without padding:
//  offset  size  field
//  4096    2     Magic
//  4098    2     MajorVersion
//  4100    2     MinorVersion
//  4102    4     CreationTime (UNIX seconds)
//  4106    4     BlockCount
//  4110    4     UsedBlockCount
//  4114    4     FreeBlockCount
//  4118    1024  VolumeName (zero terminated)
//  5142    16    VolumeID
type Header struct {
	Magic          [2]byte
	MajorVersion   uint16
	MinorVersion   uint16
	CreationTime   uint32
	BlockCount     uint32
	UsedBlockCount uint32
	FreeBlockCount uint32
	VolumeName     [VolumeNameSize]byte

	// VolumeID is all zero on images which were formatted without one.
	VolumeID [VolumeIDSize]byte
}

// headerSize is binary.Size(Header{}).
const headerSize = 2 + 2 + 2 + 4 + 4 + 4 + 4 + VolumeNameSize + VolumeIDSize
