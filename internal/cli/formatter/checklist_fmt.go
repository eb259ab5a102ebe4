package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// FormatChecklist renders the packing list with check marks and a done count.
func FormatChecklist(items []domain.ChecklistItem) string {
	if len(items) == 0 {
		return Dim("Checklist is empty.") + "\n"
	}
	var b strings.Builder
	done := 0
	for _, it := range items {
		mark := StyleDim.Render("○")
		text := StyleFg.Render(it.Text)
		if it.Checked {
			done++
			mark = StyleGreen.Render("✔")
			text = Dim(it.Text)
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", mark, text, TruncID(it.ID)))
	}
	b.WriteString(Dim(fmt.Sprintf("%d/%d packed", done, len(items))) + "\n")
	return b.String()
}
