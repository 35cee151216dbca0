package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/rostersync/rostersync"
)

// Tasks renders configured tasks, one row per realm.
type Tasks rostersync.Tasks

// Table implements Tabular.
func (t Tasks) Table() Data {
	tasks := rostersync.Tasks(t)
	rows := make([][]string, 0, len(tasks))
	for _, realm := range tasks.Realms() {
		rows = append(rows, []string{realm, strconv.Itoa(len(tasks[realm])), strings.Join(tasks[realm], ", ")})
	}
	return Data{
		Headers:         []string{"Realm", "Guilds", "Names"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// GuildResults renders guild runs, one row per guild.
type GuildResults []rostersync.GuildResult

// Table implements Tabular.
func (g GuildResults) Table() Data {
	rows := make([][]string, 0, len(g))
	for _, r := range g {
		rows = append(rows, []string{
			r.Realm,
			r.Guild,
			strconv.Itoa(r.CharactersFetched),
			strconv.Itoa(r.CharactersAdded),
			strconv.Itoa(r.CharactersUpdated),
			strconv.Itoa(len(r.Archived)),
			strconv.Itoa(r.BosskillsRecorded),
			strconv.Itoa(r.ItemsRecorded + r.ItemsAppended),
			strconv.Itoa(r.Attempts),
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	return Data{
		Headers: []string{"Realm", "Guild", "Characters", "Added", "Updated", "Archived", "Bosskills", "Items", "Attempts", "Duration"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight,
			AlignRight, AlignRight, AlignRight, AlignRight, AlignRight,
		},
	}
}
