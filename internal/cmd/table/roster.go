package table

import (
	"github.com/rostersync/rostersync/pkg/store"
)

// Member is one stored character as shown by the roster command.
type Member struct {
	Name        string `json:"name" yaml:"name"`
	Class       string `json:"class,omitempty" yaml:"class,omitempty"`
	Race        string `json:"race,omitempty" yaml:"race,omitempty"`
	Gender      string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
	GuildRank   *int   `json:"guildRank,omitempty" yaml:"guildRank,omitempty"`
	DateAdded   string `json:"dateAdded,omitempty" yaml:"dateAdded,omitempty"`
	DateRemoved string `json:"dateRemoved,omitempty" yaml:"dateRemoved,omitempty"`
}

// Roster is a list of members in name order.
type Roster []Member

// RosterFromNode reads a characters or ex-characters node.
func RosterFromNode(node store.Node) Roster {
	keys := node.Keys()
	roster := make(Roster, 0, len(keys))
	for _, name := range keys {
		child := node.Child(name)
		m := Member{Name: name}
		m.Class, _ = child.Child("class").Value().(string)
		m.Race, _ = child.Child("race").Value().(string)
		m.Gender, _ = child.Child("gender").Value().(string)
		m.Level, _ = child.Child("level").Int()
		if rank, ok := child.Child("guildRank").Int(); ok {
			m.GuildRank = &rank
		}
		m.DateAdded, _ = child.Child("dateAdded").Value().(string)
		m.DateRemoved, _ = child.Child("dateRemoved").Value().(string)
		roster = append(roster, m)
	}
	return roster
}

// Table implements Tabular. The removal column only appears when a member
// carries a removal date.
func (r Roster) Table() Data {
	archived := false
	for _, m := range r {
		if m.DateRemoved != "" {
			archived = true
			break
		}
	}

	keys := []string{"name", "class", "race", "gender", "level", "guildRank", "dateAdded"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft}
	if archived {
		keys = append(keys, "dateRemoved")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(r))
	for _, m := range r {
		rank, hasRank := 0, m.GuildRank != nil
		if hasRank {
			rank = *m.GuildRank
		}
		row := []string{
			m.Name,
			FormatString(m.Class),
			FormatString(m.Race),
			FormatString(m.Gender),
			FormatInt(m.Level, m.Level > 0),
			FormatInt(rank, hasRank),
			FormatString(m.DateAdded),
		}
		if archived {
			row = append(row, FormatString(m.DateRemoved))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         Headers(keys...),
		Rows:            rows,
		ColumnAlignment: align,
	}
}
