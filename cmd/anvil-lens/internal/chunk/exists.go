package chunk

import (
	"fmt"

	common "github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal"
	"github.com/overworld-dev/anvil-node/cmd/internal/cmderr"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/spf13/cobra"
)

var existsCMD = &cobra.Command{
	Use:   "exists",
	Short: "Check chunk presence",
	Long:  `Check whether a chunk is stored, without decoding it. Exits with code 2 when absent.`,
	Args:  cobra.NoArgs,
	RunE:  existsFunc,
}

func init() {
	common.AddWorldFlag(existsCMD.Flags(), &vWorld)
	common.MarkWorldRequired(existsCMD)
	common.AddChunkFlags(existsCMD, &vX, &vZ)
}

func existsFunc(cmd *cobra.Command, _ []string) error {
	s := common.OpenStore(vWorld)
	defer s.Close()

	pos := chunk.Pos{X: vX, Z: vZ}

	ok, err := s.HasChunk(pos)
	if err != nil {
		return fmt.Errorf("check chunk %s: %w", pos, err)
	}

	if !ok {
		return cmderr.ExitErr{Code: 2, Cause: fmt.Errorf("no chunk at %s", pos)}
	}

	cmd.Printf("chunk %s is stored\n", pos)

	return nil
}
