package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
	"github.com/rodaine/table"
)

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
}

// RenderTable renders an aligned table with a styled header row.
func RenderTable(w io.Writer, columns []Column, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	headers := make([]any, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

	tbl := table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(func(format string, vals ...any) string {
			if termenv.ColorProfile() == termenv.Ascii {
				return fmt.Sprintf(format, vals...)
			}
			return headerStyle.Render(fmt.Sprintf(format, vals...))
		})

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tbl.AddRow(cells...)
	}

	tbl.Print()
}

// TruncateString truncates a string to maxLen and adds "..." if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
