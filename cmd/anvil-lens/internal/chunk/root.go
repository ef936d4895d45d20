package chunk

import (
	"github.com/spf13/cobra"
)

var (
	vWorld string
	vX     int32
	vZ     int32
	vOut   string
)

// Root defines the root command for operations with single chunks.
var Root = &cobra.Command{
	Use:   "chunk",
	Short: "Operations with chunks",
}

func init() {
	Root.AddCommand(getCMD)
	Root.AddCommand(existsCMD)
}
