package report

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

func writeMsgPack[T any](w io.Writer, items []T) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	if items == nil {
		items = []T{}
	}
	return enc.Encode(items)
}
