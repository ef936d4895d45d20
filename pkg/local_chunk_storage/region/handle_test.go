package region

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRecord describes one chunk record of a synthetic region file.
type testRecord struct {
	idx       int
	payload   []byte // compression tag + data
	timestamp uint32

	// overrides for corruption scenarios, applied when non-zero
	location    Location
	declaredLen uint32
}

// writeTestRegion writes a region file holding the given records, allocating
// sectors sequentially after the header. Returns the file path.
func writeTestRegion(t *testing.T, dir string, p Pos, records []testRecord) string {
	header := make([]byte, HeaderSize)
	body := make([]byte, 0)

	next := uint64(2)

	for _, rec := range records {
		loc := rec.location

		if loc == 0 {
			recLen := len(rec.payload) + 4
			sectors := (recLen + SectorSize - 1) / SectorSize
			loc = Location(next<<8 | uint64(sectors)&0xff)
			next += uint64(sectors)

			declared := uint32(len(rec.payload))
			if rec.declaredLen != 0 {
				declared = rec.declaredLen
			}

			sector := make([]byte, sectors*SectorSize)
			binary.BigEndian.PutUint32(sector, declared)
			copy(sector[4:], rec.payload)
			body = append(body, sector...)
		}

		binary.BigEndian.PutUint32(header[rec.idx*4:], uint32(loc))
		binary.BigEndian.PutUint32(header[SectorSize+rec.idx*4:], rec.timestamp)
	}

	path := filepath.Join(dir, p.FileName())
	require.NoError(t, os.WriteFile(path, append(header, body...), 0o600))

	return path
}

func openTestRegion(t *testing.T, dir string, p Pos, records []testRecord) *Handle {
	path := writeTestRegion(t, dir, p, records)

	h, err := Open(p, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	return h
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(Pos{0, 0}, filepath.Join(t.TempDir(), "r.0.0.mca"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenTruncatedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.0.0.mca")
	require.NoError(t, os.WriteFile(path, make([]byte, HeaderSize-1), 0o600))

	_, err := Open(Pos{0, 0}, path)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestReadRecord(t *testing.T) {
	payload := append([]byte{3}, []byte("plain nbt bytes")...)

	h := openTestRegion(t, t.TempDir(), Pos{0, 0}, []testRecord{
		{idx: 7, payload: payload, timestamp: 100500},
	})

	got, err := h.ReadRecord(7)
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.EqualValues(t, 100500, h.Header().Timestamp(7))

	// untouched slot reads as absent
	got, err = h.ReadRecord(8)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestReadRecordBadSectorOffset(t *testing.T) {
	for _, offset := range []uint64{0, 1} {
		h := openTestRegion(t, t.TempDir(), Pos{0, 0}, []testRecord{
			{idx: 0, location: Location(offset<<8 | 1)},
		})

		_, err := h.ReadRecord(0)
		require.ErrorIs(t, err, ErrBadSectorOffset)
	}
}

func TestReadRecordBadChunkSize(t *testing.T) {
	h := openTestRegion(t, t.TempDir(), Pos{0, 0}, []testRecord{
		{idx: 0, payload: []byte{3, 1, 2, 3}, declaredLen: SectorSize + 1},
	})

	_, err := h.ReadRecord(0)
	require.ErrorIs(t, err, ErrBadChunkSize)
}

func TestReadRecordShortPayload(t *testing.T) {
	dir := t.TempDir()

	// record declares 100 payload bytes but the file ends after 10
	data := make([]byte, HeaderSize+14)
	binary.BigEndian.PutUint32(data, 2<<8|1)
	binary.BigEndian.PutUint32(data[HeaderSize:], 100)

	path := filepath.Join(dir, "r.0.0.mca")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	h, err := Open(Pos{0, 0}, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	_, err = h.ReadRecord(0)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrBadChunkSize)
	require.NotErrorIs(t, err, ErrBadSectorOffset)
}
