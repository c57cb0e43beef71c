package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pkgscope/internal/core/domain"
)

func (c *CLI) newScopeCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "scope <location>...",
		Short: "Find the package.json governing each file or directory",
		Long: "Walks up from each location to the nearest package.json. The walk stops " +
			"at node_modules directories and at the filesystem root. Locations ending " +
			"in a separator are treated as directories; file URLs are accepted.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrNoLocations
			}

			traces, err := c.app.ScopeTraces(cmd.Context(), args)
			if err != nil {
				return err
			}

			views := make([]configView, len(traces))
			for i, t := range traces {
				views[i] = newConfigView(t.Config)
				views[i].Location = args[i]
				if trace {
					views[i].Termination = string(t.Termination)
					views[i].Probes = t.Probes
				}
			}

			return encode(cmd.OutOrStdout(), c.format, views)
		},
	}
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Include every probed manifest location")
	return cmd
}
