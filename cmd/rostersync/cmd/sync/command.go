// Package sync provides the sync command, which runs every configured task.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/rostersync/rostersync"
	"github.com/rostersync/rostersync/internal/appcontext"
	"github.com/rostersync/rostersync/internal/cmd/alerts"
	"github.com/rostersync/rostersync/internal/cmd/output"
	"github.com/rostersync/rostersync/internal/cmd/table"
)

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Synchronize every configured guild",
		Long: `Sync reads the realm and guild tasks (from tasks_file or the store's
tasks node) and reconciles each guild against the armory. Realms run in
name order and guilds in the order they are listed.

The command exits with status 1 when any guild fails.`,
		Example: `  rostersync sync
  rostersync sync --store sqlite -o json
  rostersync sync --only 'Nostalrius/*' --only '*/vanguard'
  CONTINUE_ON_ERROR=true RETRIES=2 rostersync sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			syncer, err := app.Syncer(ctx, rostersync.WithOnly(only...))
			if err != nil {
				return err
			}

			result, err := syncer.Sync(ctx)
			if result != nil {
				if writeErr := output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.GuildResults(result.Guilds)); writeErr != nil && err == nil {
					err = writeErr
				}
				app.Logger().Info().Msg(result.Summary())
				w := alerts.NewTextWriter(cmd.ErrOrStderr(), app.NoColor())
				if alertErr := alerts.WriteAll(w, alerts.FromResult(result)); alertErr != nil && err == nil {
					err = alertErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "only sync tasks whose realm/guild matches a glob or regex (repeatable)")
	return cmd
}
