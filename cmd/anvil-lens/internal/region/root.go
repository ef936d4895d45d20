package region

import (
	"github.com/spf13/cobra"
)

var (
	vWorld string
	vX     int32
	vZ     int32
)

// Root defines the root command for operations with region files.
var Root = &cobra.Command{
	Use:   "region",
	Short: "Operations with region files",
}

func init() {
	Root.AddCommand(listCMD)
	Root.AddCommand(headerCMD)
}
