package models

// Reputation standing bounds, from the bottom of hated to the top of exalted.
const (
	MinStanding = -42000
	MaxStanding = 42999
)

// Factions lists the tracked factions.
var Factions = []string{
	// alliance
	"darnassus", "gnomeregan exiles", "ironforge", "stormwind",
	// horde
	"darkspear trolls", "orgrimmar", "thunder bluff", "undercity",
	// battlegrounds
	"league of arathor", "silverwing sentinels", "stormpike guard",
	"defilers", "frostwolf clan", "warsong outriders",
	// steamwheedle cartel
	"booty bay", "everlook", "gadgetzan", "ratchet",
	// other
	"brood of nozdormu", "cenarion circle", "hydraxian waterlords", "zandalar tribe",
	"argent dawn", "bloodsail buccaneers", "darkmoon faire", "gelkis clan centaur",
	"magram clan centaur", "ravenholdt", "shen'dralar", "syndicate",
	"thorium brotherhood", "timbermaw hold", "wintersaber trainers",
}

var factionSet = newSet(Factions...)

// Reputation is a character's standing with one faction.
type Reputation struct {
	name          *string
	characterName *string
	level         *int
}

// NewReputation returns an empty reputation.
func NewReputation() *Reputation {
	return &Reputation{}
}

// SetName sets the faction if it is a known classic faction.
func (r *Reputation) SetName(name string) {
	if !oneOf(factionSet, name) {
		reject("reputation", "name", name)
		return
	}
	r.name = ptr(name)
}

// SetCharacterName sets the owning character if the name is not empty.
func (r *Reputation) SetCharacterName(name string) {
	if name == "" {
		reject("reputation", "characterName", name)
		return
	}
	r.characterName = ptr(name)
}

// SetLevel sets the standing if it is within -42000..42999.
func (r *Reputation) SetLevel(level int) {
	if level < MinStanding || level > MaxStanding {
		reject("reputation", "level", level)
		return
	}
	r.level = ptr(level)
}

// Name returns the faction name, or "" when unset.
func (r *Reputation) Name() string { return value(r.name) }

// CharacterName returns the owning character, or "" when unset.
func (r *Reputation) CharacterName() string { return value(r.characterName) }

// Level returns the standing, or 0 when unset.
func (r *Reputation) Level() int { return value(r.level) }

// Fields implements Record.
func (r *Reputation) Fields() map[string]any {
	return map[string]any{
		"name":          deref(r.name),
		"characterName": deref(r.characterName),
		"level":         deref(r.level),
	}
}

// IsValid implements Record.
func (r *Reputation) IsValid() bool {
	return Valid(r)
}
