package models

import (
	"regexp"
	"time"
)

// Activity types.
const (
	ActivityLoot     = "loot"
	ActivityBosskill = "bosskill"
)

var activityTypes = newSet(ActivityLoot, ActivityBosskill)

var datetimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(Z|[+-]\d{2}:\d{2})$`)

// ValidDatetime reports whether s is a second-precision ISO-8601 timestamp
// with an explicit Z or ±HH:MM offset naming a real instant.
func ValidDatetime(s string) bool {
	if !datetimePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// Activity is one entry of a character's feed: an item pickup or a boss kill.
//
// ID is the feed entry identifier. For boss kills BosskillID names the kill
// resource the entry links to; the two are unrelated numbers.
type Activity struct {
	kind          *string
	id            *int
	characterName *string
	bosskillID    *int
	datetime      *string
}

// NewActivity returns an empty activity.
func NewActivity() *Activity {
	return &Activity{}
}

// SetType sets the type if it is loot or bosskill.
func (a *Activity) SetType(kind string) {
	if !oneOf(activityTypes, kind) {
		reject("activity", "type", kind)
		return
	}
	a.kind = ptr(kind)
}

// SetID sets the item or boss id if it is positive.
func (a *Activity) SetID(id int) {
	if id <= 0 {
		reject("activity", "id", id)
		return
	}
	a.id = ptr(id)
}

// SetCharacterName sets the owning character if the name is not empty.
func (a *Activity) SetCharacterName(name string) {
	if name == "" {
		reject("activity", "characterName", name)
		return
	}
	a.characterName = ptr(name)
}

// SetBosskillID sets the kill id if it is positive.
func (a *Activity) SetBosskillID(id int) {
	if id <= 0 {
		reject("activity", "bosskillID", id)
		return
	}
	a.bosskillID = ptr(id)
}

// SetDatetime sets the datetime if it is a valid UTC-offset timestamp.
func (a *Activity) SetDatetime(datetime string) {
	if !ValidDatetime(datetime) {
		reject("activity", "datetime", datetime)
		return
	}
	a.datetime = ptr(datetime)
}

// Type returns the activity type, or "" when unset.
func (a *Activity) Type() string { return value(a.kind) }

// ID returns the item or boss id, or 0 when unset.
func (a *Activity) ID() int { return value(a.id) }

// CharacterName returns the owning character, or "" when unset.
func (a *Activity) CharacterName() string { return value(a.characterName) }

// BosskillID returns the kill id, or 0 when unset.
func (a *Activity) BosskillID() int { return value(a.bosskillID) }

// Datetime returns the timestamp, or "" when unset.
func (a *Activity) Datetime() string { return value(a.datetime) }

// IsBosskill reports whether the activity is a boss kill.
func (a *Activity) IsBosskill() bool {
	return a.Type() == ActivityBosskill
}

// Fields implements Record. bosskillID is declared only for boss kills.
func (a *Activity) Fields() map[string]any {
	fields := map[string]any{
		"type":          deref(a.kind),
		"id":            deref(a.id),
		"characterName": deref(a.characterName),
		"datetime":      deref(a.datetime),
	}
	if a.IsBosskill() {
		fields["bosskillID"] = deref(a.bosskillID)
	}
	return fields
}

// IsValid implements Record.
func (a *Activity) IsValid() bool {
	return Valid(a)
}
