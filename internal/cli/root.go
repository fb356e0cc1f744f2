package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand returns the resizectl command tree.
func NewRootCommand(fs afero.Fs, logger *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "resizectl",
		Short:         "Resize images with a resize service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(NewResizeCommand(fs, logger))
	return rootCmd
}
