package region

import (
	"fmt"
	"path/filepath"

	common "github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"github.com/spf13/cobra"
)

var listCMD = &cobra.Command{
	Use:   "list",
	Short: "List region files",
	Long:  `List the world's region files together with their stored chunk counts.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	common.AddWorldFlag(listCMD.Flags(), &vWorld)
	common.MarkWorldRequired(listCMD)
}

func listFunc(cmd *cobra.Command, _ []string) error {
	dir := filepath.Join(vWorld, "region")

	positions, err := region.List(dir)
	if err != nil {
		return fmt.Errorf("list region files: %w", err)
	}

	for _, p := range positions {
		h, err := region.Open(p, filepath.Join(dir, p.FileName()))
		if err != nil {
			return fmt.Errorf("open region %s: %w", p, err)
		}

		var stored int
		for idx := 0; idx < region.TableLen; idx++ {
			if !h.Header().Location(idx).Zero() {
				stored++
			}
		}

		_ = h.Close()

		cmd.Printf("%s: %d chunks\n", p.FileName(), stored)
	}

	cmd.Printf("%d region files\n", len(positions))

	return nil
}
