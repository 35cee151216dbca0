package app

import (
	"github.com/spf13/cobra"

	"github.com/rostersync/rostersync/cmd/rostersync/cmd/guild"
	"github.com/rostersync/rostersync/cmd/rostersync/cmd/roster"
	synccmd "github.com/rostersync/rostersync/cmd/rostersync/cmd/sync"
	"github.com/rostersync/rostersync/cmd/rostersync/cmd/tasks"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(synccmd.NewCommand(a))
	rootCmd.AddCommand(guild.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(roster.NewCommand(a))
	rootCmd.AddCommand(tasks.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rostersync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
