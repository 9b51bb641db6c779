package run

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Ledger renders fixes as aligned plain-text rows, one per fix:
// outcome, bug type, file:line and commit message.
func Ledger(fixes []Fix) string {
	if len(fixes) == 0 {
		return ""
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, f := range fixes {
		loc := f.File
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Status, f.Type, loc, f.CommitMsg)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
