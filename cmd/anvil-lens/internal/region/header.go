package region

import (
	"fmt"
	"path/filepath"
	"time"

	common "github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"github.com/spf13/cobra"
)

var headerCMD = &cobra.Command{
	Use:   "header",
	Short: "Inspect a region header",
	Long:  `Print every allocated slot of a region's location and timestamp tables.`,
	Args:  cobra.NoArgs,
	RunE:  headerFunc,
}

func init() {
	common.AddWorldFlag(headerCMD.Flags(), &vWorld)
	common.MarkWorldRequired(headerCMD)
	headerCMD.Flags().Int32Var(&vX, "x", 0, "Region X coordinate")
	headerCMD.Flags().Int32Var(&vZ, "z", 0, "Region Z coordinate")
	_ = headerCMD.MarkFlagRequired("x")
	_ = headerCMD.MarkFlagRequired("z")
}

func headerFunc(cmd *cobra.Command, _ []string) error {
	p := region.Pos{X: vX, Z: vZ}

	h, err := region.Open(p, filepath.Join(vWorld, "region", p.FileName()))
	if err != nil {
		return fmt.Errorf("open region %s: %w", p, err)
	}
	defer h.Close()

	var stored int

	for idx := 0; idx < region.TableLen; idx++ {
		loc := h.Header().Location(idx)
		if loc.Zero() {
			continue
		}

		stored++

		cmd.Printf("slot %4d chunk %-12s sectors [%d, %d) modified %s\n",
			idx,
			p.ChunkAt(idx),
			loc.SectorOffset(),
			loc.SectorOffset()+uint64(loc.SectorCount()),
			time.Unix(int64(h.Header().Timestamp(idx)), 0).UTC().Format(time.RFC3339),
		)
	}

	cmd.Printf("%d of %d slots allocated\n", stored, region.TableLen)

	return nil
}
