package anvil

import (
	"sync"
	"testing"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/compression"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"github.com/overworld-dev/anvil-node/pkg/util"
	"github.com/stretchr/testify/require"
)

func writeIterWorld(t *testing.T) (string, map[chunk.Pos]uint32) {
	worldRoot, regionDir := newTestWorld(t)

	expected := make(map[chunk.Pos]uint32)

	for i, rp := range []region.Pos{{X: 0, Z: 0}, {X: -1, Z: 3}} {
		var records []testRecord

		for _, idx := range []int{0, 100, region.TableLen - 1} {
			ts := uint32(1000*i + idx)
			records = append(records, testRecord{
				idx:       idx,
				payload:   nbtPayload(t, compression.SchemeZlib, testTree()),
				timestamp: ts,
			})
			expected[rp.ChunkAt(idx)] = ts
		}

		writeRegionFile(t, regionDir, rp, records)
	}

	return worldRoot, expected
}

func TestIterate(t *testing.T) {
	worldRoot, expected := writeIterWorld(t)
	s := newTestStore(t, worldRoot, 4)

	var prm IterationPrm

	got := make(map[chunk.Pos]uint32)
	prm.WithHandler(func(p chunk.Pos, c *chunk.Chunk) error {
		got[p] = c.Timestamp
		return nil
	})

	require.NoError(t, s.Iterate(prm))
	require.Equal(t, expected, got)
}

func TestIterateWithWorkerPool(t *testing.T) {
	worldRoot, expected := writeIterWorld(t)
	s := newTestStore(t, worldRoot, 4)

	pool, err := util.NewWorkerPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	var (
		mtx sync.Mutex
		got = make(map[chunk.Pos]uint32)
	)

	var prm IterationPrm
	prm.WithWorkerPool(pool)
	prm.WithHandler(func(p chunk.Pos, c *chunk.Chunk) error {
		mtx.Lock()
		defer mtx.Unlock()

		got[p] = c.Timestamp
		return nil
	})

	require.NoError(t, s.Iterate(prm))
	require.Equal(t, expected, got)
}

func TestIterateFaultHandler(t *testing.T) {
	worldRoot, regionDir := newTestWorld(t)

	writeRegionFile(t, regionDir, region.Pos{X: 0, Z: 0}, []testRecord{
		{idx: 0, payload: nbtPayload(t, compression.SchemeNone, testTree()), timestamp: 1},
		{idx: 1, payload: []byte{77, 1, 2, 3}, timestamp: 2}, // unknown scheme
		{idx: 2, payload: nbtPayload(t, compression.SchemeNone, testTree()), timestamp: 3},
	})

	s := newTestStore(t, worldRoot, 4)

	// default fault handling aborts on the corrupt record
	var prm IterationPrm
	prm.WithHandler(func(chunk.Pos, *chunk.Chunk) error { return nil })

	err := s.Iterate(prm)

	var e compression.UnknownSchemeError
	require.ErrorAs(t, err, &e)

	// a skipping fault handler sees the corrupt record and the iteration
	// still visits the healthy ones
	var (
		visited int
		faults  []chunk.Pos
	)

	prm.WithHandler(func(chunk.Pos, *chunk.Chunk) error {
		visited++
		return nil
	})
	prm.WithFaultHandler(func(p chunk.Pos, err error) error {
		faults = append(faults, p)
		return nil
	})

	require.NoError(t, s.Iterate(prm))
	require.Equal(t, 2, visited)
	require.Equal(t, []chunk.Pos{{X: 1, Z: 0}}, faults)
}

func TestIterateEmptyWorld(t *testing.T) {
	worldRoot, _ := newTestWorld(t)
	s := newTestStore(t, worldRoot, 4)

	var prm IterationPrm
	prm.WithHandler(func(chunk.Pos, *chunk.Chunk) error {
		t.Fatal("handler called for empty world")
		return nil
	})

	require.NoError(t, s.Iterate(prm))

	// a world root without a region directory iterates as empty too
	s2 := newTestStore(t, t.TempDir(), 4)
	require.NoError(t, s2.Iterate(prm))
}
