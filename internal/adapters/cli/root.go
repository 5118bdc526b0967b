package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkowalczyk/zus-accident-assistant/internal/bootstrap"
)

// NewRootCmd assembles the zant command tree around a wired client app.
func NewRootCmd(app *bootstrap.ClientApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zant",
		Short: "Guided workplace accident analysis",
		Long: `zant submits accident case documents to the analysis pipeline,
follows the run to completion and renders the accident card and legal
opinion produced for the case.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
