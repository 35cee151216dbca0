// Package roster provides the roster command, which prints stored characters.
package roster

import (
	"github.com/spf13/cobra"

	"github.com/rostersync/rostersync/internal/appcontext"
	"github.com/rostersync/rostersync/internal/cmd/output"
	"github.com/rostersync/rostersync/internal/cmd/table"
	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/store"
)

// NewCommand creates the roster command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:     "roster <guild>",
		GroupID: "inspect",
		Short:   "Show the stored characters of a guild",
		Example: `  rostersync roster vanguard
  rostersync roster vanguard --archived -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			backend, err := app.Store(ctx)
			if err != nil {
				return err
			}

			node := constants.NodeCharacters
			if archived {
				node = constants.NodeExCharacters
			}
			characters, err := store.Root(backend).Child(constants.NodeGuilds, args[0], node).Read(ctx)
			if err != nil {
				return err
			}

			roster := table.RosterFromNode(characters)
			app.Logger().Debug().
				Str("guild", args[0]).
				Int("characters", len(roster)).
				Msg("Read roster")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), roster)
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "show ex-characters instead of current members")
	return cmd
}
