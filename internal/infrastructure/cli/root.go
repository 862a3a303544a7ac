// Package cli exposes the cobra command tree and the terminal adapters.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/pls-go/internal/app"
	"github.com/doeshing/pls-go/internal/services"
)

// NewRootCmd wires the cobra root command. A bare `pls <words...>` is
// treated as a query, so `pls -y find big files` works without naming the
// query subcommand.
func NewRootCmd(verbose bool) (*cobra.Command, error) {
	container, err := app.BuildContainer(verbose)
	if err != nil {
		return nil, err
	}
	container.QueryService.Prompter = NewPrompter(nil, nil)
	container.QueryService.Editor = NewExternalEditor()
	container.QueryService.Presenter = NewRenderer(nil)

	var (
		yolo    bool
		explain bool
	)

	root := &cobra.Command{
		Use:   "pls [query]",
		Short: "pls turns natural language into vetted shell commands",
		Long:  "pls indexes the tools installed on this machine and uses a local language model to turn free-text tasks into shell commands, gated by a risk check and an interactive confirmation loop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runQuery(cmd, container, args, yolo, explain)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().BoolVarP(&yolo, "yolo", "y", false, "Run safe commands without confirmation")
	root.Flags().BoolVarP(&explain, "explain", "e", false, "Show the plan and explanation without executing")

	root.AddCommand(newQueryCommand(container))
	root.AddCommand(newIndexCommand(container))
	root.AddCommand(newStatsCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newRedoCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newConfigCommand(container))
	return root, nil
}

func newQueryCommand(container *app.Container) *cobra.Command {
	var (
		yolo    bool
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "query [natural language]",
		Short: "Generate and run a command from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, container, args, yolo, explain)
		},
	}

	cmd.Flags().BoolVarP(&yolo, "yolo", "y", false, "Run safe commands without confirmation")
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Show the plan and explanation without executing")
	return cmd
}

func runQuery(cmd *cobra.Command, container *app.Container, args []string, yolo, explain bool) error {
	ctx := cmd.Context()
	if _, err := container.CatalogService.EnsureIndexed(ctx); err != nil {
		return err
	}
	return container.QueryService.Run(ctx, services.QueryRequest{
		Query:       strings.Join(args, " "),
		Yolo:        yolo || container.Config.Behavior.YoloMode,
		ExplainOnly: explain,
	})
}
