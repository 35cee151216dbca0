package models

// Character domain bounds.
const (
	MinLevel = 1
	MaxLevel = 60
)

// Classes lists the playable classes.
var Classes = []string{"druid", "hunter", "mage", "paladin", "priest", "rogue", "shaman", "warlock", "warrior"}

// Races lists the playable races.
var Races = []string{"human", "dwarf", "night elf", "gnome", "orc", "undead", "tauren", "troll"}

// Genders lists the accepted genders.
var Genders = []string{"male", "female"}

var (
	classSet  = newSet(Classes...)
	raceSet   = newSet(Races...)
	genderSet = newSet(Genders...)
)

// Character is a guild member. Its name is the store key and never a
// payload field.
type Character struct {
	name      *string
	class     *string
	race      *string
	gender    *string
	level     *int
	guildRank *int
}

// NewCharacter returns an empty character.
func NewCharacter() *Character {
	return &Character{}
}

// SetName sets the name if it is non-empty.
func (c *Character) SetName(name string) {
	if name == "" {
		reject("character", "name", name)
		return
	}
	c.name = ptr(name)
}

// SetClass sets the class if it is a known class.
func (c *Character) SetClass(class string) {
	if !oneOf(classSet, class) {
		reject("character", "class", class)
		return
	}
	c.class = ptr(class)
}

// SetRace sets the race if it is a known race.
func (c *Character) SetRace(race string) {
	if !oneOf(raceSet, race) {
		reject("character", "race", race)
		return
	}
	c.race = ptr(race)
}

// SetGender sets the gender if it is male or female.
func (c *Character) SetGender(gender string) {
	if !oneOf(genderSet, gender) {
		reject("character", "gender", gender)
		return
	}
	c.gender = ptr(gender)
}

// SetLevel sets the level if it lies within 1..60.
func (c *Character) SetLevel(level int) {
	if level < MinLevel || level > MaxLevel {
		reject("character", "level", level)
		return
	}
	c.level = ptr(level)
}

// SetGuildRank sets the guild rank if it is not negative.
func (c *Character) SetGuildRank(rank int) {
	if rank < 0 {
		reject("character", "guildRank", rank)
		return
	}
	c.guildRank = ptr(rank)
}

// Name returns the character name, or "" when unset.
func (c *Character) Name() string { return value(c.name) }

// Class returns the class, or "" when unset.
func (c *Character) Class() string { return value(c.class) }

// Race returns the race, or "" when unset.
func (c *Character) Race() string { return value(c.race) }

// Gender returns the gender, or "" when unset.
func (c *Character) Gender() string { return value(c.gender) }

// Level returns the level, or 0 when unset.
func (c *Character) Level() int { return value(c.level) }

// GuildRank returns the guild rank, or 0 when unset.
func (c *Character) GuildRank() int { return value(c.guildRank) }

// Fields implements Record.
func (c *Character) Fields() map[string]any {
	return map[string]any{
		"name":      deref(c.name),
		"class":     deref(c.class),
		"race":      deref(c.race),
		"gender":    deref(c.gender),
		"level":     deref(c.level),
		"guildRank": deref(c.guildRank),
	}
}

// IsValid implements Record.
func (c *Character) IsValid() bool {
	return Valid(c)
}

// Data returns the stored payload of a valid character: every field except
// the name. It returns nil for an invalid character.
func (c *Character) Data() map[string]any {
	if !c.IsValid() {
		return nil
	}
	data := c.Fields()
	delete(data, "name")
	return data
}
