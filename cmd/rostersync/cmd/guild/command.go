// Package guild provides the guild command, which synchronizes one guild.
package guild

import (
	"github.com/spf13/cobra"

	"github.com/rostersync/rostersync/internal/appcontext"
	"github.com/rostersync/rostersync/internal/cmd/output"
	"github.com/rostersync/rostersync/internal/cmd/table"
)

// NewCommand creates the guild command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "guild <realm> <guild>",
		GroupID: "core",
		Short:   "Synchronize a single guild",
		Example: `  rostersync guild Nostalrius vanguard`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			syncer, err := app.Syncer(ctx)
			if err != nil {
				return err
			}

			result, err := syncer.SyncGuild(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.GuildResults{*result})
		},
	}
}
