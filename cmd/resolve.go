package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-locator/framework/app"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Build an identifier and print its Go type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.Application) error {
				obj, err := a.Locator.GetContext(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%T\n", obj)
				return err
			})
		},
	}
}
