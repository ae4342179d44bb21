package report

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable renders rows as space-separated columns padded to the widest
// cell, with a dashed rule under the header.
func writeTable[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	header, rows, err := rowsOf(Table, items)
	if err != nil {
		return err
	}
	widths := computeWidths(header, rows)
	aligns := alignmentsOf(items[0], len(widths))
	var sb strings.Builder
	if header != nil {
		writeRow(&sb, header, widths, aligns)
		rule := make([]string, len(widths))
		for i, wd := range widths {
			rule[i] = strings.Repeat("-", wd)
		}
		writeRow(&sb, rule, widths, nil)
	}
	for _, row := range rows {
		writeRow(&sb, row, widths, aligns)
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func computeWidths(header []string, rows [][]string) []int {
	n := len(header)
	for _, r := range rows {
		n = max(n, len(r))
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}
	return widths
}

// writeRow joins padded cells with two spaces. A left-aligned last column
// is not padded. A nil aligns left-aligns every cell.
func writeRow(sb *strings.Builder, cells []string, widths []int, aligns []Alignment) {
	for i := range widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		align := AlignLeft
		if aligns != nil {
			align = aligns[i]
		}
		if i == len(widths)-1 && align == AlignLeft {
			sb.WriteString(c)
			break
		}
		sb.WriteString(alignCell(c, widths[i], align))
		if i < len(widths)-1 {
			sb.WriteString("  ")
		}
	}
	sb.WriteByte('\n')
}
