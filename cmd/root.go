package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/km-arc/go-locator/framework/app"
)

var version = "dev"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	envFiles  []string
	recipeDir string
	quiet     bool
	appOpts   []app.Option
}

// NewRootCmd builds the command tree. appOpts are passed to every
// application the subcommands boot.
func NewRootCmd(appOpts ...app.Option) *cobra.Command {
	opts := &rootOptions{appOpts: appOpts}

	root := &cobra.Command{
		Use:   "locator",
		Short: "Inspect and serve a service locator",
		Long: `Boot a service locator from .env configuration and YAML recipe files,
then query it from the command line or serve it over HTTP.

Examples:
  # Is "mailer" known?
  locator has mailer

  # Show the recipe "mailer" is built from
  locator describe mailer

  # Build "mailer" and print its Go type
  locator resolve mailer

  # Serve the inspection endpoints on APP_PORT
  locator serve --env .env.local`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSliceVarP(&opts.envFiles, "env", "e", nil,
		"env files to load (default: .env)")
	root.PersistentFlags().StringVarP(&opts.recipeDir, "recipes", "r", "",
		"recipe directory (overrides LOCATOR_RECIPE_DIR)")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"discard logs")

	root.AddCommand(
		newServeCmd(opts),
		newHasCmd(opts),
		newDescribeCmd(opts),
		newResolveCmd(opts),
		newListCmd(opts),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// boot creates the application described by the flags.
func (o *rootOptions) boot() (*app.Application, error) {
	opts := append([]app.Option{app.WithEnvFiles(o.envFiles...)}, o.appOpts...)
	if o.recipeDir != "" {
		opts = append(opts, app.WithRecipeFS(os.DirFS(o.recipeDir)))
	}
	if o.quiet {
		opts = append(opts, app.WithLogger(zap.NewNop()))
	}

	a, err := app.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	return a, nil
}

// withApp boots the application, runs fn and shuts the application down.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(a *app.Application) error) error {
	a, err := o.boot()
	if err != nil {
		return err
	}
	defer func() { _ = a.Shutdown(cmd.Context()) }()
	return fn(a)
}
