package models

import "slices"

// Profession level bounds.
const (
	MinSkill = 1
	MaxSkill = 300
)

// primaryProfessions are removed from the store when a character stops
// reporting them.
var primaryProfessions = []string{
	"herbalism", "mining", "skinning",
	"alchemy", "blacksmithing", "enchanting", "engineering", "leatherworking", "tailoring",
}

// secondaryProfessions are never removed.
var secondaryProfessions = []string{"cooking", "first aid", "fishing", "riding"}

var professionSet = newSet(append(slices.Clone(primaryProfessions), secondaryProfessions...)...)

// PrimaryProfessions returns the primary profession names.
func PrimaryProfessions() []string {
	return slices.Clone(primaryProfessions)
}

// IsPrimary reports whether name is a primary profession.
func IsPrimary(name string) bool {
	return slices.Contains(primaryProfessions, name)
}

// Profession is a character's skill level in one profession or secondary skill.
type Profession struct {
	name          *string
	characterName *string
	level         *int
}

// NewProfession returns an empty profession.
func NewProfession() *Profession {
	return &Profession{}
}

// SetName sets the profession if it is a known primary or secondary skill.
func (p *Profession) SetName(name string) {
	if !oneOf(professionSet, name) {
		reject("profession", "name", name)
		return
	}
	p.name = ptr(name)
}

// SetCharacterName sets the owning character if the name is not empty.
func (p *Profession) SetCharacterName(name string) {
	if name == "" {
		reject("profession", "characterName", name)
		return
	}
	p.characterName = ptr(name)
}

// SetLevel sets the skill level if it is within 1..300.
func (p *Profession) SetLevel(level int) {
	if level < MinSkill || level > MaxSkill {
		reject("profession", "level", level)
		return
	}
	p.level = ptr(level)
}

// Name returns the profession name, or "" when unset.
func (p *Profession) Name() string { return value(p.name) }

// CharacterName returns the owning character, or "" when unset.
func (p *Profession) CharacterName() string { return value(p.characterName) }

// Level returns the skill level, or 0 when unset.
func (p *Profession) Level() int { return value(p.level) }

// Fields implements Record.
func (p *Profession) Fields() map[string]any {
	return map[string]any{
		"name":          deref(p.name),
		"characterName": deref(p.characterName),
		"level":         deref(p.level),
	}
}

// IsValid implements Record.
func (p *Profession) IsValid() bool {
	return Valid(p)
}
