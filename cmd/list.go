package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-locator/framework/app"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var types bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered identifiers, or catalog types with --types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.Application) error {
				names := a.Locator.Registered()
				if types {
					names = a.Types.Names()
				}
				for _, n := range names {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&types, "types", "t", false, "list catalog type names instead")
	return cmd
}
