package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const tablePadding = 2

// writeTable aligns rows under headers. Widths ignore ANSI styling so colored
// cells line up.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	colCount := len(headers)
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for idx, cell := range row {
			widths[idx] = max(widths[idx], cellWidth(cell))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	w := bufio.NewWriter(out)
	writeRow := func(row []string) {
		for idx := 0; idx < colCount; idx++ {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			_, _ = w.WriteString(cell)
			if idx < colCount-1 {
				_, _ = w.WriteString(strings.Repeat(" ", widths[idx]-cellWidth(cell)+tablePadding))
			}
		}
		_ = w.WriteByte('\n')
	}

	if len(headers) > 0 {
		writeRow(headers)
	}
	for _, row := range rows {
		writeRow(row)
	}
	return w.Flush()
}

func cellWidth(value string) int {
	return runewidth.StringWidth(ansi.Strip(value))
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
