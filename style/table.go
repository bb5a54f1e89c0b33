package style

// Table is a two-level map keyed by a (major, minor) index pair.
//
// With maxSize zero it grows without bound. With maxSize set it keeps two
// generations: stores go to the head generation, and once the head holds
// maxSize entries the generations flip and the older one is dropped. A hit in
// the older generation moves the entry to the head, so entries that keep
// being read survive rotation with their value unchanged.
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	gens      [2]map[int]map[int]V
	head      int
	size      int
	maxSize   int
	rotations int
}

func NewTable[V any](maxSize int) *Table[V] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Table[V]{
		gens:    [2]map[int]map[int]V{{}, {}},
		maxSize: maxSize,
	}
}

func (t *Table[V]) Load(major, minor int) (V, bool) {
	if v, ok := lookup(t.gens[t.head], major, minor); ok {
		return v, true
	}
	tail := t.gens[1-t.head]
	v, ok := lookup(tail, major, minor)
	if !ok {
		var zero V
		return zero, false
	}
	remove(tail, major, minor)
	t.Store(major, minor, v)
	return v, true
}

func (t *Table[V]) Store(major, minor int, v V) {
	if t.maxSize > 0 && t.size >= t.maxSize {
		t.head = 1 - t.head
		t.gens[t.head] = map[int]map[int]V{}
		t.size = 0
		t.rotations++
	}
	gen := t.gens[t.head]
	row, ok := gen[major]
	if !ok {
		row = map[int]V{}
		gen[major] = row
	}
	if _, exists := row[minor]; !exists {
		t.size++
	}
	row[minor] = v
}

// DeleteMajor removes every entry whose major key satisfies drop.
func (t *Table[V]) DeleteMajor(drop func(major int) bool) {
	for g, gen := range t.gens {
		for major, row := range gen {
			if !drop(major) {
				continue
			}
			if g == t.head {
				t.size -= len(row)
			}
			delete(gen, major)
		}
	}
}

// Clear drops every entry but keeps the rotation count.
func (t *Table[V]) Clear() {
	t.gens = [2]map[int]map[int]V{{}, {}}
	t.size = 0
}

// Len returns the number of resident entries across both generations.
func (t *Table[V]) Len() int {
	n := 0
	for _, gen := range t.gens {
		for _, row := range gen {
			n += len(row)
		}
	}
	return n
}

// Rotations returns how many times the generations have flipped.
func (t *Table[V]) Rotations() int {
	return t.rotations
}

func lookup[V any](gen map[int]map[int]V, major, minor int) (V, bool) {
	row, ok := gen[major]
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := row[minor]
	return v, ok
}

func remove[V any](gen map[int]map[int]V, major, minor int) {
	row, ok := gen[major]
	if !ok {
		return
	}
	delete(row, minor)
	if len(row) == 0 {
		delete(gen, major)
	}
}
