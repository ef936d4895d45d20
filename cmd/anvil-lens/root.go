package main

import (
	"os"

	"github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal/chunk"
	"github.com/overworld-dev/anvil-node/cmd/anvil-lens/internal/region"
	"github.com/overworld-dev/anvil-node/cmd/internal/cmderr"
	"github.com/spf13/cobra"
)

var command = &cobra.Command{
	Use:           "anvil-lens",
	Short:         "Anvil World Storage Lens",
	Long:          `Anvil World Storage Lens provides tools to browse the contents of Anvil region files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Usage()
	},
}

func init() {
	// use stdout as default output for cmd.Print()
	command.SetOut(os.Stdout)
	command.AddCommand(
		region.Root,
		chunk.Root,
	)
}

func main() {
	err := command.Execute()
	cmderr.ExitOnErr(err)
}
