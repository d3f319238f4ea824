package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-locator/framework/app"
)

func newHasCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "has <id>",
		Short: "Print whether an identifier can be resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.Application) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), a.Locator.Has(args[0]))
				return err
			})
		},
	}
}
