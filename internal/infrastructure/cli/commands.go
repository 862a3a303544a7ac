package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/pls-go/internal/app"
	"github.com/doeshing/pls-go/internal/domain"
)

func newIndexCommand(container *app.Container) *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Discover installed tools and build the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showStats {
				return printStats(cmd, container)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "indexing system tools...")
			container.Builder.Progress = func(current, total int, name string) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r  [%d/%d] %s%-20s", current, total, name, "")
			}
			count, err := container.CatalogService.BuildIndex(cmd.Context())
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%-60s\r", "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "done: %d tools indexed\n", count)
			fmt.Fprintf(cmd.OutOrStdout(), "  db: %s\n", container.Store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "Show index statistics instead of rebuilding")
	return cmd
}

func newStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(cmd, container)
		},
	}
}

func printStats(cmd *cobra.Command, container *app.Container) error {
	out := cmd.OutOrStdout()
	count, err := container.CatalogService.ToolCount()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(out, "no index found. run 'pls index' first.")
		return nil
	}

	fmt.Fprintln(out, "index stats:")
	fmt.Fprintf(out, "  tools: %d\n", count)
	if info, err := os.Stat(container.Store.Path()); err == nil {
		fmt.Fprintf(out, "  size:  %s\n", humanize.IBytes(uint64(info.Size())))
	}
	fmt.Fprintf(out, "  path:  %s\n", container.Store.Path())
	return nil
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent queries and their outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries, err := container.Store.RecentHistory(container.Config.Behavior.HistoryWindow)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no history yet.")
				return nil
			}

			fmt.Fprintln(out, "recent queries:")
			fmt.Fprintln(out)
			for _, entry := range entries {
				fmt.Fprintf(out, "%s %s\n", historyStatus(entry), entry.Query)
				for _, command := range entry.Commands {
					fmt.Fprintf(out, "    %s\n", command)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// historyStatus maps an entry to its glyph: + ran and succeeded, x ran and
// failed, - never ran.
func historyStatus(entry domain.HistoryEntry) string {
	if !entry.Executed {
		return "-"
	}
	if entry.Succeeded {
		return "+"
	}
	return "x"
}

func newRedoCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Re-edit and run the last executed command",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			last, ok, err := container.Store.LastExecutedCommand()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "no previous command to edit.")
				return nil
			}

			edited, err := NewExternalEditor().Edit(last)
			if err != nil {
				return err
			}
			edited = strings.TrimSpace(edited)
			if edited == "" {
				return nil
			}

			commands := []string{edited}
			if container.QueryService.Classifier.Assess(commands, container.Config.Safety) == domain.RiskBlocked {
				NewRenderer(out).ShowBlocked(commands)
				return nil
			}

			fmt.Fprintf(out, "edited: %s\n", edited)
			succeeded, output, err := container.QueryService.Runner.Run(cmd.Context(), commands, container.Config.Safety.MaxOutputLines)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, output)
			return container.Store.AppendHistory(domain.HistoryEntry{
				Query:        "[edited]",
				Commands:     commands,
				Executed:     true,
				Succeeded:    succeeded,
				OutputSample: output,
			})
		},
	}
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run pipeline diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "diagnostics:")
			fmt.Fprintln(out)
			for _, check := range container.DoctorService.Run(cmd.Context()) {
				status := "ok"
				if !check.OK {
					status = "failed"
				}
				if check.Detail != "" {
					fmt.Fprintf(out, "  %s ... %s (%s)\n", check.Name, status, check.Detail)
				} else {
					fmt.Fprintf(out, "  %s ... %s\n", check.Name, status)
				}
			}
			return nil
		},
	}
}

func newConfigCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open the configuration file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := container.ConfigLoader.EnsureExists()
			if err != nil {
				return err
			}
			return openInEditor(path)
		},
	}
}
