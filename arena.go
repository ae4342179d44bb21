package fmtx

import "unsafe"

const slabSize = 1024

// arena owns the copies a Store makes: strings live in append-only byte
// slabs, custom values on a singly linked chain. Nothing is freed
// individually; release drops everything at once.
type arena struct {
	slabs [][]byte
	head  *arenaNode
	nodes int
}

type arenaNode struct {
	next *arenaNode
	ptr  unsafe.Pointer
}

// arenaMark records a state to roll back to.
type arenaMark struct {
	slabs int
	used  int
	head  *arenaNode
	nodes int
}

func (a *arena) alloc(n int) []byte {
	if k := len(a.slabs); k > 0 {
		cur := a.slabs[k-1]
		if cap(cur)-len(cur) >= n {
			a.slabs[k-1] = cur[:len(cur)+n]
			return cur[len(cur) : len(cur)+n : len(cur)+n]
		}
	}
	size := slabSize
	if n > size {
		size = n
	}
	slab := make([]byte, n, size)
	a.slabs = append(a.slabs, slab)
	return slab[:n:n]
}

// copyString returns a copy of s backed by the arena.
func (a *arena) copyString(s string) string {
	if s == "" {
		return ""
	}
	b := a.alloc(len(s))
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}

// keep links p into the chain and returns it.
func (a *arena) keep(p unsafe.Pointer) unsafe.Pointer {
	a.head = &arenaNode{next: a.head, ptr: p}
	a.nodes++
	return p
}

func (a *arena) mark() arenaMark {
	m := arenaMark{slabs: len(a.slabs), head: a.head, nodes: a.nodes}
	if m.slabs > 0 {
		m.used = len(a.slabs[m.slabs-1])
	}
	return m
}

func (a *arena) rollback(m arenaMark) {
	clear(a.slabs[m.slabs:])
	a.slabs = a.slabs[:m.slabs]
	if m.slabs > 0 {
		a.slabs[m.slabs-1] = a.slabs[m.slabs-1][:m.used]
	}
	a.head = m.head
	a.nodes = m.nodes
}

// release drops every copy in one step.
func (a *arena) release() {
	a.slabs = nil
	a.head = nil
	a.nodes = 0
}

// size reports the bytes held in slabs.
func (a *arena) size() int {
	n := 0
	for _, s := range a.slabs {
		n += len(s)
	}
	return n
}
