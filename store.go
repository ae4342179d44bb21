package fmtx

// namedIndex maps a name to a logical argument index.
type namedIndex struct {
	name  string
	index int
}

// Args is a read-only view of an argument list with optional names.
type Args struct {
	list  []Arg
	named []namedIndex
}

// NewArgs returns a view over args. Names set with Named are found by a
// linear scan.
func NewArgs(args ...Arg) Args { return Args{list: args} }

// Len returns the number of arguments.
func (a Args) Len() int { return len(a.list) }

// Get returns the argument at index i.
func (a Args) Get(i int) (Arg, bool) {
	if i < 0 || i >= len(a.list) {
		return Arg{}, false
	}
	return a.list[i], true
}

// Lookup returns the argument with the given name and its index.
func (a Args) Lookup(name string) (Arg, int, bool) {
	if a.named != nil {
		for _, n := range a.named {
			if n.name == name {
				return a.list[n.index], n.index, true
			}
		}
		return Arg{}, -1, false
	}
	for i, arg := range a.list {
		if arg.name == name {
			return arg, i, true
		}
	}
	return Arg{}, -1, false
}

// Store is a dynamically built argument list. Strings from Bytes and values
// from Custom are copied into an arena owned by the store, so the store
// stays valid after the originals change or go away. When named arguments
// are present, physical index 0 holds a marker and real arguments start at
// 1; indexes seen through Args, Get and templates are always logical.
//
// A Store is not safe for concurrent mutation.
type Store struct {
	data  []Arg
	named []namedIndex
	arena arena
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Reserve pre-sizes the store for total arguments of which named are named.
// It panics with a *ContractViolation when named exceeds total.
func (s *Store) Reserve(total, named int) {
	if named > total {
		violate("reserve: %d named arguments exceed total of %d", named, total)
	}
	want := total
	if named > 0 {
		want++
	}
	if cap(s.data) < want {
		data := make([]Arg, len(s.data), want)
		copy(data, s.data)
		s.data = data
	}
	if cap(s.named) < named {
		n := make([]namedIndex, len(s.named), named)
		copy(n, s.named)
		s.named = n
	}
}

// Push appends an argument. An argument built with Named is pushed as a
// named argument.
func (s *Store) Push(a Arg) {
	if a.name != "" {
		s.PushNamed(a.name, a)
		return
	}
	s.data = append(s.data, s.own(a))
}

// PushNamed appends a named argument. The name is always copied. Names must
// be identifiers; anything else panics with a *ContractViolation. A panic
// anywhere in the push leaves the store exactly as it was.
func (s *Store) PushNamed(name string, a Arg) {
	nData, nNamed := len(s.data), len(s.named)
	mark := s.arena.mark()
	inserted := false
	done := false
	defer func() {
		if done {
			return
		}
		if inserted {
			copy(s.data, s.data[1:nData+1])
		}
		clear(s.data[nData:])
		s.data = s.data[:nData]
		s.named = s.named[:nNamed]
		s.arena.rollback(mark)
	}()

	if !isIdentifier(name) {
		violate("argument name %q is not an identifier", name)
	}
	name = s.arena.copyString(name)
	a = s.own(a)
	if len(s.named) == 0 {
		s.data = append(s.data, Arg{})
		copy(s.data[1:], s.data)
		s.data[0] = Arg{kind: KindNamedMarker}
		inserted = true
	}
	s.data = append(s.data, a)
	s.named = append(s.named, namedIndex{name: name, index: len(s.data) - 2})
	s.data[0].bits = uint64(len(s.named))
	done = true
}

// own copies the parts of a that must outlive the caller into the arena.
func (s *Store) own(a Arg) Arg {
	a.name = ""
	if a.flags&flagCopy == 0 {
		return a
	}
	switch a.kind {
	case KindString:
		a.str = s.arena.copyString(a.str)
	case KindCustom:
		a.ptr = a.clone(a.ptr, &s.arena)
	}
	a.flags &^= flagCopy
	return a
}

// Clear drops every argument and name and releases the arena.
func (s *Store) Clear() {
	clear(s.data)
	s.data = s.data[:0]
	s.named = s.named[:0]
	s.arena.release()
}

// Len returns the number of arguments, not counting the marker.
func (s *Store) Len() int {
	if len(s.named) > 0 {
		return len(s.data) - 1
	}
	return len(s.data)
}

// Args returns a view of the stored arguments. The view is invalidated by
// the next Push or Clear.
func (s *Store) Args() Args {
	if len(s.named) > 0 {
		return Args{list: s.data[1:], named: s.named}
	}
	return Args{list: s.data}
}

// Get returns the argument at logical index i.
func (s *Store) Get(i int) (Arg, bool) { return s.Args().Get(i) }

// Lookup returns the named argument and its logical index.
func (s *Store) Lookup(name string) (Arg, int, bool) { return s.Args().Lookup(name) }

func isIdentifier(s string) bool {
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameStart(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
