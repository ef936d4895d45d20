// Package region implements the on-disk layout of Anvil region files: the
// two-sector header with its parallel location and timestamp tables, the
// sector-aligned chunk payload records and the `r.<x>.<z>.mca` file naming
// convention.
package region

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
)

const (
	// SectorSize is the allocation unit of a region file.
	SectorSize = 4096

	// HeaderSize is the size of the two header sectors.
	HeaderSize = 2 * SectorSize

	// TableLen is the number of entries in each header table.
	TableLen = chunk.GridSize * chunk.GridSize
)

// ErrNotFound is returned when a region file is missing on disk. Callers
// treat it as "no chunk at this location", not as an I/O failure.
var ErrNotFound = errors.New("region file not found")

// Pos is a region position. A region aggregates a 32x32 grid of chunks and
// maps to exactly one file on disk.
type Pos struct {
	X, Z int32
}

// FromChunk returns the position of the region holding the given chunk.
func FromChunk(p chunk.Pos) Pos {
	x, z := p.Region()
	return Pos{X: x, Z: z}
}

// String implements fmt.Stringer.
func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Z)
}

// ChunkAt returns the world-absolute position of the chunk stored in the
// given slot of the region's header tables. Inverse of chunk.Pos.Index for
// chunks of this region.
func (p Pos) ChunkAt(idx int) chunk.Pos {
	return chunk.Pos{
		X: p.X*chunk.GridSize + int32(idx%chunk.GridSize),
		Z: p.Z*chunk.GridSize + int32(idx/chunk.GridSize),
	}
}

// FileName returns the name of the region's file, without directory.
func (p Pos) FileName() string {
	return fmt.Sprintf("r.%d.%d.mca", p.X, p.Z)
}

// ParseFileName parses a `r.<x>.<z>.mca` file name into a region position.
func ParseFileName(name string) (Pos, error) {
	var p Pos

	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] != "mca" {
		return p, fmt.Errorf("invalid region file name %q", name)
	}

	x, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return p, fmt.Errorf("invalid region X in %q: %w", name, err)
	}

	z, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return p, fmt.Errorf("invalid region Z in %q: %w", name, err)
	}

	p.X, p.Z = int32(x), int32(z)

	return p, nil
}

// List returns the positions of all region files in the given directory.
// Files not following the naming convention are skipped.
func List(dir string) ([]Pos, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read region directory: %w", err)
	}

	var res []Pos

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		p, err := ParseFileName(filepath.Base(e.Name()))
		if err != nil {
			continue
		}

		res = append(res, p)
	}

	return res, nil
}
