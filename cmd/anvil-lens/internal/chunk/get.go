package chunk

import (
	"fmt"

	common "github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/spf13/cobra"
)

var getCMD = &cobra.Command{
	Use:   "get",
	Short: "Get chunk",
	Long:  `Read one chunk and print its decoded NBT tree or save the raw NBT bytes.`,
	Args:  cobra.NoArgs,
	RunE:  getFunc,
}

func init() {
	common.AddWorldFlag(getCMD.Flags(), &vWorld)
	common.MarkWorldRequired(getCMD)
	common.AddChunkFlags(getCMD, &vX, &vZ)
	common.AddOutputFileFlag(getCMD.Flags(), &vOut)
}

func getFunc(cmd *cobra.Command, _ []string) error {
	s := common.OpenStore(vWorld)
	defer s.Close()

	pos := chunk.Pos{X: vX, Z: vZ}

	c, err := s.ReadChunk(pos)
	if err != nil {
		return fmt.Errorf("read chunk %s: %w", pos, err)
	}

	if c == nil {
		return fmt.Errorf("no chunk at %s", pos)
	}

	if vOut != "" {
		return common.WriteRawNBT(cmd, vOut, c)
	}

	return common.PrintChunk(cmd, c)
}
