package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-locator/framework/app"
	"github.com/km-arc/go-locator/framework/recipe"
)

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Print the recipe an identifier is built from, as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return opts.withApp(cmd, func(a *app.Application) error {
				r, ok := a.Locator.Recipe(id)
				if !ok {
					return fmt.Errorf("no recipe for identifier '%s'", id)
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(map[string]*recipe.Recipe{id: r}); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
}
