package value

// Tab is the runtime's hash table. Keys are compared structurally for
// primitives and by identity for heap objects; insertion order is
// preserved for iteration.
type Tab struct {
	index map[tabKey]int
	keys  []Value
	vals  []Value
}

// tabKey is the normalized, comparable form of a key value. Heap kinds
// normalize to their pointer, so two distinct arrays are two distinct
// keys even when structurally equal.
type tabKey struct {
	ref  any
	bits uint64
	kind Kind
}

func keyOf(v Value) tabKey {
	return tabKey{kind: v.kind, bits: v.bits, ref: v.ref}
}

func NewTab() *Tab {
	return &Tab{index: make(map[tabKey]int)}
}

// NewTabPairs creates a table from alternating key, value entries. An
// odd trailing key takes Nil as its value.
func NewTabPairs(pairs ...Value) *Tab {
	t := NewTab()
	for i := 0; i < len(pairs); i += 2 {
		v := Nil
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		t.Set(pairs[i], v)
	}
	return t
}

func (t *Tab) Len() int {
	return len(t.keys)
}

// Get looks up k, reporting whether it was present.
func (t *Tab) Get(k Value) (Value, bool) {
	i, ok := t.index[keyOf(k)]
	if !ok {
		return Nil, false
	}
	return t.vals[i], true
}

// Set stores v under k, replacing any previous entry.
func (t *Tab) Set(k, v Value) {
	nk := keyOf(k)
	if i, ok := t.index[nk]; ok {
		t.vals[i] = v
		return
	}
	t.index[nk] = len(t.keys)
	t.keys = append(t.keys, k)
	t.vals = append(t.vals, v)
}

// Delete removes the entry for k, reporting whether it was present.
func (t *Tab) Delete(k Value) bool {
	nk := keyOf(k)
	i, ok := t.index[nk]
	if !ok {
		return false
	}
	last := len(t.keys) - 1
	if i != last {
		t.keys[i] = t.keys[last]
		t.vals[i] = t.vals[last]
		t.index[keyOf(t.keys[i])] = i
	}
	t.keys = t.keys[:last]
	t.vals = t.vals[:last]
	delete(t.index, nk)
	return true
}

// Each visits every entry in insertion order (disturbed by deletions)
// until fn returns false.
func (t *Tab) Each(fn func(k, v Value) bool) {
	for i := range t.keys {
		if !fn(t.keys[i], t.vals[i]) {
			return
		}
	}
}
