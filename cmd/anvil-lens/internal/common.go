// Package internal holds flag and output helpers shared by anvil-lens
// subcommands.
package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/anvil"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	flagWorld = "world"
	flagX     = "x"
	flagZ     = "z"
	flagOut   = "out"
)

// AddWorldFlag adds the required world root path flag.
func AddWorldFlag(fs *pflag.FlagSet, v *string) {
	fs.StringVar(v, flagWorld, "", "Path to the world root directory")
}

// MarkWorldRequired marks the world flag as required on the command.
func MarkWorldRequired(cmd *cobra.Command) {
	_ = cmd.MarkFlagRequired(flagWorld)
}

// AddChunkFlags adds the required chunk coordinate flags.
func AddChunkFlags(cmd *cobra.Command, x, z *int32) {
	cmd.Flags().Int32Var(x, flagX, 0, "Chunk X coordinate")
	cmd.Flags().Int32Var(z, flagZ, 0, "Chunk Z coordinate")
	_ = cmd.MarkFlagRequired(flagX)
	_ = cmd.MarkFlagRequired(flagZ)
}

// AddOutputFileFlag adds an optional output file flag.
func AddOutputFileFlag(fs *pflag.FlagSet, v *string) {
	fs.StringVar(v, flagOut, "", "File to save the raw chunk NBT to")
}

// OpenStore opens a read-only chunk store over the given world root with
// settings suitable for one-shot inspection.
func OpenStore(world string) *anvil.Store {
	return anvil.New(world, 16, time.Minute, anvil.WithLogger(zap.NewNop()))
}

// PrintChunk prints the decoded chunk tree as indented JSON together with
// its header timestamp.
func PrintChunk(cmd *cobra.Command, c *chunk.Chunk) error {
	data, err := json.MarshalIndent(c.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("render chunk tree: %w", err)
	}

	cmd.Printf("timestamp: %s\n", time.Unix(int64(c.Timestamp), 0).UTC().Format(time.RFC3339))
	cmd.Println(string(data))

	return nil
}

// WriteRawNBT saves the chunk's uncompressed NBT payload to a file.
func WriteRawNBT(cmd *cobra.Command, path string, c *chunk.Chunk) error {
	if err := os.WriteFile(path, c.RawNBT(), 0o640); err != nil {
		return fmt.Errorf("write NBT to file: %w", err)
	}

	cmd.Printf("saved raw NBT to %s\n", path)

	return nil
}
