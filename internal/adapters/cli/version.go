package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zant version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("zant " + Version)
		},
	}
}
