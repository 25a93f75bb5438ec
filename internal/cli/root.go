package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tasklist/internal/format"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasklist",
		Short:        "In-memory task list served over HTTP",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Run the server on the default address
  tasklist serve

  # Run with a config file and open the browser
  tasklist serve --config ~/.config/tasklist/tasklist.toml --open
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TASKLIST_CONFIG", ""), "Path to TOML config file (missing file means defaults)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newServeCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
