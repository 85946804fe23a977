package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func Execute() error {
	app := &app{}
	return runRoot(newRootCmd(app), app)
}

// runRoot releases whatever wiring opened once the command returns. Cobra skips
// post-run hooks when RunE fails, so the close cannot live there.
func runRoot(root *cobra.Command, app *app) error {
	err := root.Execute()
	if closeErr := app.close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}

	return err
}

func newRootCmd(app *app) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sb",
		Short:         "Stock board (sb): discussion board and stock trend visualizer",
		Long:          "sb keeps a local discussion board of posts and charts stock trends and predictions fetched from a trends endpoint, in the terminal, as images, or as a web page.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd.Context(), configFile, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $HOME/.config/stockboard/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBoardCmd(app),
		newTrendsCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
