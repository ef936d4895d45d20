package anvil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/compression"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"github.com/stretchr/testify/require"
)

// testRecord describes one chunk record of a synthetic region file.
type testRecord struct {
	idx       int
	payload   []byte
	timestamp uint32

	// header overrides for corruption scenarios
	location    region.Location
	declaredLen uint32
}

// newTestWorld creates a world root with an empty region directory and
// returns both paths.
func newTestWorld(t *testing.T) (worldRoot, regionDir string) {
	worldRoot = t.TempDir()
	regionDir = filepath.Join(worldRoot, "region")
	require.NoError(t, os.Mkdir(regionDir, 0o700))

	return worldRoot, regionDir
}

// writeRegionFile writes a synthetic region file, allocating record sectors
// sequentially after the header.
func writeRegionFile(t *testing.T, dir string, p region.Pos, records []testRecord) {
	header := make([]byte, region.HeaderSize)
	var body []byte

	next := uint64(2)

	for _, rec := range records {
		loc := rec.location

		if loc == 0 {
			sectors := (len(rec.payload) + 4 + region.SectorSize - 1) / region.SectorSize
			loc = region.Location(next<<8 | uint64(sectors)&0xff)
			next += uint64(sectors)

			declared := uint32(len(rec.payload))
			if rec.declaredLen != 0 {
				declared = rec.declaredLen
			}

			sector := make([]byte, sectors*region.SectorSize)
			binary.BigEndian.PutUint32(sector, declared)
			copy(sector[4:], rec.payload)
			body = append(body, sector...)
		}

		binary.BigEndian.PutUint32(header[rec.idx*4:], uint32(loc))
		binary.BigEndian.PutUint32(header[region.SectorSize+rec.idx*4:], rec.timestamp)
	}

	err := os.WriteFile(filepath.Join(dir, p.FileName()), append(header, body...), 0o600)
	require.NoError(t, err)
}

// nbtPayload encodes v as NBT and frames it as a payload record with the
// given compression scheme.
func nbtPayload(t *testing.T, scheme compression.Scheme, v any) []byte {
	var plain bytes.Buffer
	require.NoError(t, nbt.NewEncoder(&plain).Encode(v, ""))

	buf := bytes.NewBuffer([]byte{byte(scheme)})

	switch scheme {
	case compression.SchemeGzip:
		w := gzip.NewWriter(buf)
		_, err := w.Write(plain.Bytes())
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case compression.SchemeZlib:
		w := zlib.NewWriter(buf)
		_, err := w.Write(plain.Bytes())
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case compression.SchemeNone:
		buf.Write(plain.Bytes())
	default:
		t.Fatalf("unexpected scheme %d", scheme)
	}

	return buf.Bytes()
}

// testTree is a minimal chunk-like NBT tree in the dynamic form the decoder
// produces.
func testTree() map[string]any {
	return map[string]any{
		"Status": "full",
		"xPos":   int32(5),
		"zPos":   int32(-3),
	}
}
