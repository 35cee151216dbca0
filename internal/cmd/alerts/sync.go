package alerts

import (
	"fmt"
	"strings"

	"github.com/rostersync/rostersync"
)

// FromResult builds the alerts for a finished sync: one error per failed
// guild, a warning per guild that archived characters, and a closing
// success or error summary.
func FromResult(result *rostersync.Result) []*Alert {
	if result == nil {
		return nil
	}

	var out []*Alert
	for _, f := range result.Failures {
		a := NewError(fmt.Sprintf("guild %s on %s failed", f.Guild, f.Realm)).WithError(f.Err)
		a.Timestamp = result.EndTime
		out = append(out, a)
	}
	for _, g := range result.Guilds {
		if g.Result == nil || len(g.Archived) == 0 {
			continue
		}
		a := NewWarning(fmt.Sprintf("%s/%s archived %d character(s)", g.Realm, g.Guild, len(g.Archived))).
			WithDetails(strings.Join(g.Archived, ", "))
		a.Timestamp = result.EndTime
		out = append(out, a)
	}

	var summary *Alert
	if result.Failed() {
		summary = NewError(fmt.Sprintf("%d of %d guild(s) failed", len(result.Failures), len(result.Failures)+len(result.Guilds)))
	} else {
		summary = NewSuccess(fmt.Sprintf("%d guild(s) synchronized", len(result.Guilds)))
	}
	summary.Timestamp = result.EndTime
	return append(out, summary)
}
