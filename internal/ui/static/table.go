// Package static renders non-interactive terminal output: tables and
// the summary printed after a hook run.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/catalyst/internal/ui/styles"
)

// MaxCellWidth is the widest a cell is rendered before it is truncated.
const MaxCellWidth = 72

// RenderTable lays out rows under headers with aligned columns and no borders.
// Cells wider than MaxCellWidth are cut with an ellipsis.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cut := make([][]string, len(rows))
	for i, row := range rows {
		cut[i] = make([]string, len(row))
		for j, cell := range row {
			cut[i][j] = ansi.Truncate(firstLine(cell), MaxCellWidth, "…")
		}
	}

	t := table.New().
		Headers(headers...).
		Rows(cut...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
