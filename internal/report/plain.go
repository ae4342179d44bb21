package report

import (
	"fmt"
	"io"
)

func writePlain[T any](w io.Writer, items []T) error {
	for _, item := range items {
		var s string
		switch v := any(item).(type) {
		case Styled:
			s = v.Styled()
		case fmt.Stringer:
			s = v.String()
		default:
			s = fmt.Sprintf("%v", item)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
