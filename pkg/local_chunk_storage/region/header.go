package region

import (
	"encoding/binary"
)

// Location is one word of the header's location table. The top 24 bits are
// the sector offset of the chunk's payload record counted from the start of
// the file, the low 8 bits are the number of sectors reserved for it.
type Location uint32

// Zero reports whether the location marks an absent chunk.
func (l Location) Zero() bool {
	return l == 0
}

// SectorOffset returns the offset of the payload record in sectors.
func (l Location) SectorOffset() uint64 {
	return uint64(l >> 8)
}

// SectorCount returns the number of sectors reserved for the payload record.
func (l Location) SectorCount() int {
	return int(l & 0xff)
}

// Header is an in-memory copy of a region file's first two sectors: a
// 1024-entry location table followed by a parallel 1024-entry table of
// modification timestamps. It is a point-in-time snapshot taken when the
// region was opened and is never refreshed afterwards.
type Header [HeaderSize]byte

// Location returns the location word of the chunk with the given in-region
// index.
func (h *Header) Location(idx int) Location {
	return Location(binary.BigEndian.Uint32(h[idx*4:]))
}

// Timestamp returns the modification time, in seconds since the Unix epoch,
// of the chunk with the given in-region index.
func (h *Header) Timestamp(idx int) uint32 {
	return binary.BigEndian.Uint32(h[SectorSize+idx*4:])
}
