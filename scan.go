package fmtx

import "strings"

type indexMode uint8

const (
	modeUnset indexMode = iota
	modeAuto
	modeManual
)

// scanner walks a template, emitting literal runs and replacement fields
// to a fieldHandler. It also owns the automatic argument counter.
type scanner struct {
	tmpl string
	next int
	mode indexMode
}

func (s *scanner) nextID(pos int) (int, error) {
	if s.mode == modeManual {
		return 0, formatErr(ErrIndexingMode, pos, "cannot switch from manual to automatic argument indexing")
	}
	s.mode = modeAuto
	id := s.next
	s.next++
	return id, nil
}

func (s *scanner) manualID(pos int) error {
	if s.mode == modeAuto {
		return formatErr(ErrIndexingMode, pos, "cannot switch from automatic to manual argument indexing")
	}
	s.mode = modeManual
	return nil
}

// fieldHandler receives the pieces of a template in order.
type fieldHandler interface {
	text(s string)
	// field handles a replacement field referring to ref. t[i] is ':' or
	// '}'. It returns the index just past the closing brace.
	field(ref argRef, i int) (int, error)
}

func (s *scanner) scan(h fieldHandler) error {
	t := s.tmpl
	start, i := 0, 0
	for {
		j := strings.IndexAny(t[i:], "{}")
		if j < 0 {
			break
		}
		i += j
		if t[i] == '}' {
			if i+1 < len(t) && t[i+1] == '}' {
				h.text(t[start : i+1])
				i += 2
				start = i
				continue
			}
			return formatErr(ErrInvalidTemplate, i, "unmatched '}' in format string")
		}
		if start < i {
			h.text(t[start:i])
		}
		i++
		if i >= len(t) {
			return formatErr(ErrInvalidTemplate, i-1, "invalid format string")
		}
		if t[i] == '{' {
			h.text(t[i : i+1])
			i++
			start = i
			continue
		}
		end, err := s.replacement(h, i)
		if err != nil {
			return err
		}
		i, start = end, end
	}
	if start < len(t) {
		h.text(t[start:])
	}
	return nil
}

// replacement parses the argument id at t[i] and hands the field over.
func (s *scanner) replacement(h fieldHandler, i int) (int, error) {
	t := s.tmpl
	var ref argRef
	if c := t[i]; c == '}' || c == ':' {
		id, err := s.nextID(i)
		if err != nil {
			return 0, err
		}
		ref = argRef{kind: refIndex, index: id, pos: i}
	} else {
		var err error
		if ref, i, err = parseArgID(t, i, s); err != nil {
			return 0, err
		}
		if i >= len(t) || (t[i] != '}' && t[i] != ':') {
			return 0, formatErr(ErrInvalidTemplate, i, "missing '}' in format string")
		}
	}
	return h.field(ref, i)
}

// specEnd returns the index of the '}' closing a spec that starts at t[i],
// skipping balanced nested braces, or -1.
func specEnd(t string, i int) int {
	depth := 0
	for ; i < len(t); i++ {
		switch t[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
