package region

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrBadSectorOffset is returned when a location word points into the region
// header. Offsets 0 and 1 are the header's own sectors, so any offset below
// 2 means the file is corrupt rather than the chunk being absent.
var ErrBadSectorOffset = errors.New("invalid chunk sector offset")

// ErrBadChunkSize is returned when a payload record declares a length larger
// than the sector span reserved for it in the location table.
var ErrBadChunkSize = errors.New("invalid chunk size")

// Handle is an open region file together with its cached header and the time
// of its last use. Handles are not safe for concurrent use; the owning cache
// serializes access to them.
type Handle struct {
	pos     Pos
	file    *os.File
	header  Header
	lastUse time.Time
}

// Open opens the region file at the given path and reads its header. The
// file is opened read-write to match the descriptor mode a future write path
// would need, though this layer never writes through it.
//
// Returns ErrNotFound if the file does not exist. A file shorter than the
// two header sectors is reported as an error, not as an absent region.
func Open(p Pos, path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open region file: %w", err)
	}

	h := &Handle{
		pos:  p,
		file: f,
	}

	if _, err := io.ReadFull(f, h.header[:]); err != nil {
		_ = f.Close()

		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("region file %s shorter than its header", p)
		}
		return nil, fmt.Errorf("read region header: %w", err)
	}

	return h, nil
}

// Pos returns the region's position.
func (h *Handle) Pos() Pos {
	return h.pos
}

// Header returns the region's cached header.
func (h *Handle) Header() *Header {
	return &h.header
}

// LastUse returns the time of the last Touch call.
func (h *Handle) LastUse() time.Time {
	return h.lastUse
}

// Touch records an access to the handle at the given time.
func (h *Handle) Touch(now time.Time) {
	h.lastUse = now
}

// ReadRecord reads the raw payload record of the chunk with the given
// in-region index: one byte of compression scheme followed by the compressed
// or raw NBT bytes. Returns nil, nil if the location table marks the chunk
// as absent.
//
// The location word is validated before any I/O: a sector offset below 2
// fails with ErrBadSectorOffset, a declared length exceeding the reserved
// sector span fails with ErrBadChunkSize.
func (h *Handle) ReadRecord(idx int) ([]byte, error) {
	loc := h.header.Location(idx)
	if loc.Zero() {
		return nil, nil
	}

	if loc.SectorOffset() < 2 {
		return nil, ErrBadSectorOffset
	}

	if _, err := h.file.Seek(int64(loc.SectorOffset()*SectorSize), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to chunk record: %w", err)
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(h.file, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("read chunk record length: %w", err)
	}

	size := binary.BigEndian.Uint32(lenBuf[:])
	if int(size) > loc.SectorCount()*SectorSize {
		return nil, ErrBadChunkSize
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(h.file, payload); err != nil {
		return nil, fmt.Errorf("read chunk record payload: %w", err)
	}

	return payload, nil
}

// Close closes the underlying file.
func (h *Handle) Close() error {
	return h.file.Close()
}
