package report

import (
	"fmt"
	"io"
	"strings"
)

func writeTSV[T any](w io.Writer, items []T) error {
	if len(items) == 0 {
		return nil
	}
	header, rows, err := rowsOf(TSV, items)
	if err != nil {
		return err
	}
	if header != nil {
		if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
			return err
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			row[i] = tsvEscaper.Replace(cell)
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\\", `\\`)
