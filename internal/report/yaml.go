package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML[T any](w io.Writer, items []T) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if items == nil {
		items = []T{}
	}
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}
