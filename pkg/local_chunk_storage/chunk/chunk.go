package chunk

import (
	"bytes"

	"github.com/Tnze/go-mc/nbt"
)

// Chunk is a fully decoded chunk record. It is an immutable value: the
// storage layer keeps no references to it after returning it.
type Chunk struct {
	// Data is the chunk's NBT tree in dynamic form.
	Data map[string]any

	// Timestamp is the last modification time of the chunk in seconds
	// since the Unix epoch, as recorded in the region header.
	Timestamp uint32

	// raw is the uncompressed NBT payload the chunk was decoded from.
	raw []byte
}

// New assembles a decoded chunk from its dynamic tree, header timestamp and
// uncompressed NBT payload.
func New(data map[string]any, timestamp uint32, raw []byte) *Chunk {
	return &Chunk{
		Data:      data,
		Timestamp: timestamp,
		raw:       raw,
	}
}

// RawNBT returns the uncompressed NBT payload the chunk was decoded from.
// The returned slice must not be modified.
func (c *Chunk) RawNBT() []byte {
	return c.raw
}

// Unmarshal re-decodes the chunk's NBT payload into v, which follows the
// usual `nbt:"..."` struct tag conventions. It allows callers with a known
// chunk schema to skip walking the dynamic tree.
func (c *Chunk) Unmarshal(v any) error {
	_, err := nbt.NewDecoder(bytes.NewReader(c.raw)).Decode(v)
	return err
}
