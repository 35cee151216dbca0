// Package tasks provides the tasks command, which lists configured guilds.
package tasks

import (
	"github.com/spf13/cobra"

	"github.com/rostersync/rostersync/internal/appcontext"
	"github.com/rostersync/rostersync/internal/cmd/output"
	"github.com/rostersync/rostersync/internal/cmd/table"
)

// NewCommand creates the tasks command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "tasks",
		GroupID: "inspect",
		Short:   "List the configured realms and guilds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			syncer, err := app.Syncer(ctx)
			if err != nil {
				return err
			}
			tasks, err := syncer.Tasks(ctx)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.Tasks(tasks))
		},
	}
}
