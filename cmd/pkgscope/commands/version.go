package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgscope/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		// The version command needs no session.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pkgscope version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)
		},
	}
}
