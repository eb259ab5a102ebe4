package formatter

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/gate"
)

// FormatPending describes an action held by the unlock gate.
func FormatPending(p *gate.Pending) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s would touch %s, starting with %s at %s.",
		StyleBold.Render(p.Action.Name),
		StyleYellow.Render(Plural(p.LockedCount, "locked item")),
		StylePurple.Render(p.FirstItem.Title),
		Dim(p.FirstLocked.String()),
	)
}
