package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pkgscope/internal/core/domain"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <manifest>...",
		Short: "Show the configuration of specific package.json files",
		Long: "Reads each manifest directly. Missing or invalid manifests are reported " +
			"with exists=false; no parent directories are searched.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrNoLocations
			}

			views := make([]configView, 0, len(args))
			for _, path := range args {
				cfg, err := c.app.PackageConfig(cmd.Context(), path)
				if err != nil {
					return err
				}
				views = append(views, newConfigView(cfg))
			}

			return encode(cmd.OutOrStdout(), c.format, views)
		},
	}
}
