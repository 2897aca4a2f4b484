// Package report renders the three roster views as a fixed-format text
// report. Output is deterministic: identical input yields byte-identical
// text.
package report

import (
	"strconv"
	"strings"

	"github.com/okian/roster/internal/domain/register"
)

// Section headers, in the fixed order they are emitted.
const (
	historyHeader = "All participants (in order of registration):"
	uniqueHeader  = "Unique participants:"
	scoresHeader  = "Final scores:"
)

// Render produces the three labeled sections separated by blank lines:
// the full history space-separated in arrival order, the distinct names
// space-separated in ascending order, and one "name : score" line per
// participant in ascending name order. Empty views still emit their
// headers.
func Render(res register.Result) string {
	var b strings.Builder

	b.WriteString(historyHeader)
	b.WriteByte('\n')
	b.WriteString(strings.Join(res.History, " "))
	b.WriteString("\n\n")

	b.WriteString(uniqueHeader)
	b.WriteByte('\n')
	b.WriteString(strings.Join(res.UniqueNames, " "))
	b.WriteString("\n\n")

	b.WriteString(scoresHeader)
	b.WriteByte('\n')
	for _, e := range res.LatestScore {
		b.WriteString(e.Name)
		b.WriteString(" : ")
		b.WriteString(strconv.FormatInt(e.Score, 10))
		b.WriteByte('\n')
	}

	return b.String()
}
