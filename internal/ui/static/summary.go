package static

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/catalyst/internal/hooks"
	"github.com/raphi011/catalyst/internal/script"
	"github.com/raphi011/catalyst/internal/ui/styles"
)

// SummaryHeaders are the columns of the run summary table.
var SummaryHeaders = []string{"", "HOOK", "DIALECT", "RESULT", "TIME", "ERROR"}

// SummaryRow formats one outcome for RenderTable.
func SummaryRow(o hooks.Outcome) []string {
	sym := styles.CurrentSymbols()

	var mark, result string
	switch o.Result {
	case hooks.OK:
		mark = styles.SuccessStyle.Render(sym.OK)
		result = styles.SuccessStyle.Render(o.Result.String())
	case hooks.NotFound, hooks.UnknownDialect:
		mark = styles.WarningStyle.Render(sym.Skipped)
		result = styles.WarningStyle.Render(o.Result.String())
	default:
		mark = styles.ErrorStyle.Render(sym.Failed)
		result = styles.ErrorStyle.Render(o.Result.String())
	}

	dialect := "-"
	if o.Dialect != script.Unknown {
		dialect = o.Dialect.String()
	}

	elapsed := "-"
	if o.Duration > 0 {
		elapsed = styles.MutedStyle.Render(o.Duration.Round(time.Millisecond).String())
	}

	errText := ""
	if o.Err != nil {
		errText = o.Err.Error()
	}

	return []string{
		mark,
		styles.FileLink(o.Path, o.Identifier),
		dialect,
		result,
		elapsed,
		errText,
	}
}

// RenderSummary returns the outcome table followed by a totals line.
// An empty report renders as "".
func RenderSummary(r hooks.Report) string {
	if len(r.Outcomes) == 0 {
		return ""
	}

	rows := make([][]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		rows[i] = SummaryRow(o)
	}

	var b strings.Builder
	b.WriteString(RenderTable(SummaryHeaders, rows))
	b.WriteString(Totals(r))
	b.WriteString("\n")
	return b.String()
}

// Totals returns a one-line count such as "3 hooks: 2 ok, 1 failed".
func Totals(r hooks.Report) string {
	failed := len(r.Failed())
	ok := len(r.Outcomes) - failed

	noun := "hooks"
	if len(r.Outcomes) == 1 {
		noun = "hook"
	}
	line := fmt.Sprintf("%d %s: %d ok", len(r.Outcomes), noun, ok)
	if failed > 0 {
		return line + styles.ErrorStyle.Render(fmt.Sprintf(", %d failed", failed))
	}
	return line
}
