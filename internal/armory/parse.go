package armory

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rostersync/rostersync/pkg/models"
)

var classes = map[int]string{
	1:  "warrior",
	2:  "paladin",
	3:  "hunter",
	4:  "rogue",
	5:  "priest",
	7:  "shaman",
	8:  "mage",
	9:  "warlock",
	11: "druid",
}

var races = map[int]string{
	1: "human",
	2: "orc",
	3: "dwarf",
	4: "night elf",
	5: "undead",
	6: "tauren",
	7: "gnome",
	8: "troll",
}

var genders = map[int]string{
	0: "male",
	1: "female",
}

// feedTimeLayout is the armory's date and time attributes joined by a space.
const feedTimeLayout = "02.01.2006 15:04:05"

var bossKillPattern = regexp.MustCompile(`boss-kill=(\d+)`)

// lower lower-cases s. A Caser holds state, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func attrInt(s *goquery.Selection, name string) (int, bool) {
	v, ok := s.Attr(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	return i, err == nil
}

// lookup maps the integer attribute through ids; unknown ids yield "" so
// the setter rejects them.
func lookup(s *goquery.Selection, attr string, ids map[int]string) string {
	id, ok := attrInt(s, attr)
	if !ok {
		return ""
	}
	return ids[id]
}

func parseCharacters(doc *goquery.Document) []*models.Character {
	var out []*models.Character
	doc.Find("character").Each(func(_ int, s *goquery.Selection) {
		c := models.NewCharacter()
		c.SetName(lower(s.AttrOr("name", "")))
		c.SetClass(lookup(s, "classid", classes))
		c.SetRace(lookup(s, "raceid", races))
		c.SetGender(lookup(s, "genderid", genders))
		if level, ok := attrInt(s, "level"); ok {
			c.SetLevel(level)
		}
		if rank, ok := attrInt(s, "rank"); ok {
			c.SetGuildRank(rank)
		}
		out = append(out, c)
	})
	return out
}

func parseProfessions(doc *goquery.Document, character string) []*models.Profession {
	var out []*models.Profession
	add := func(name string, level int) {
		p := models.NewProfession()
		p.SetCharacterName(character)
		p.SetName(lower(name))
		p.SetLevel(level)
		out = append(out, p)
	}

	doc.Find("professions skill").Each(func(_ int, s *goquery.Selection) {
		level, _ := attrInt(s, "value")
		add(s.AttrOr("name", ""), level)
	})
	// secondary skills are listed even when never learned
	doc.Find("skills skill").Each(func(_ int, s *goquery.Selection) {
		if level, ok := attrInt(s, "skill"); ok && level > 0 {
			add(s.AttrOr("name", ""), level)
		}
	})
	return out
}

func parseReputations(doc *goquery.Document, character string) []*models.Reputation {
	var out []*models.Reputation
	doc.Find("faction faction:not([header])").Each(func(_ int, s *goquery.Selection) {
		r := models.NewReputation()
		r.SetCharacterName(character)
		r.SetName(lower(s.AttrOr("name", "")))
		if level, ok := attrInt(s, "reputation"); ok {
			r.SetLevel(level)
		}
		out = append(out, r)
	})
	return out
}

func parseActivities(doc *goquery.Document, character string, offset time.Duration) []*models.Activity {
	var out []*models.Activity
	doc.Find("event").Each(func(_ int, s *goquery.Selection) {
		a := models.NewActivity()
		a.SetCharacterName(character)
		a.SetType(lower(s.AttrOr("type", "")))
		if id, ok := attrInt(s, "id"); ok {
			a.SetID(id)
		}
		if dt, ok := feedDatetime(s.AttrOr("date", ""), s.AttrOr("time", ""), offset); ok {
			a.SetDatetime(dt)
		}
		if a.IsBosskill() {
			if id, ok := bossKillID(s); ok {
				a.SetBosskillID(id)
			}
		}
		out = append(out, a)
	})
	return out
}

// feedDatetime converts an armory date (DD.MM.YYYY) and time (HH:MM:SS)
// in server time to a UTC timestamp.
func feedDatetime(date, clock string, offset time.Duration) (string, bool) {
	t, err := time.ParseInLocation(feedTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.UTC)
	if err != nil {
		return "", false
	}
	return t.Add(-offset).Format("2006-01-02T15:04:05Z"), true
}

// bossKillID extracts the id from the boss-kill link of an event.
// Only the event's own links count; events can nest in parsed markup.
func bossKillID(event *goquery.Selection) (int, bool) {
	var id int
	var found bool
	event.Find(`a[href*="boss-kill="]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if a.Closest("event").Get(0) != event.Get(0) {
			return true
		}
		m := bossKillPattern.FindStringSubmatch(a.AttrOr("href", ""))
		if m == nil {
			return true
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}
		id, found = n, true
		return false
	})
	return id, found
}

// errorMarker reports an error page.
func errorMarker(doc *goquery.Document) (string, bool) {
	sel := doc.Find("errorhtml, error")
	if sel.Length() == 0 {
		return "", false
	}
	msg := strings.TrimSpace(sel.First().Text())
	if msg == "" {
		msg = sel.First().AttrOr("message", "armory returned an error page")
	}
	return msg, true
}
