package value

// Arr is the runtime's growable vector of values.
type Arr struct {
	elems []Value
}

// NewArr creates an array holding the given values.
func NewArr(vals ...Value) *Arr {
	elems := make([]Value, len(vals))
	copy(elems, vals)
	return &Arr{elems: elems}
}

// NewArrCap creates an empty array with capacity for n elements.
func NewArrCap(n int) *Arr {
	return &Arr{elems: make([]Value, 0, n)}
}

func (a *Arr) Len() int {
	return len(a.elems)
}

// At returns the element at index i. Out-of-range indices return Nil.
func (a *Arr) At(i int) Value {
	if i < 0 || i >= len(a.elems) {
		return Nil
	}
	return a.elems[i]
}

// Set stores v at index i. Out-of-range indices are ignored.
func (a *Arr) Set(i int, v Value) {
	if i >= 0 && i < len(a.elems) {
		a.elems[i] = v
	}
}

func (a *Arr) Push(v Value) {
	a.elems = append(a.elems, v)
}

// Values returns the live backing slice. Callers must not hold it across
// a mutation of the array.
func (a *Arr) Values() []Value {
	return a.elems
}

// Str is the runtime's mutable byte string. Its contents are not
// guaranteed to be valid UTF-8; text-typed extraction validates at the
// boundary.
type Str struct {
	b []byte
}

func NewStr(s string) *Str {
	return &Str{b: []byte(s)}
}

// StrFromBytes wraps b without copying.
func StrFromBytes(b []byte) *Str {
	return &Str{b: b}
}

func (s *Str) Len() int {
	return len(s.b)
}

func (s *Str) String() string {
	return string(s.b)
}

// Bytes returns the live backing bytes.
func (s *Str) Bytes() []byte {
	return s.b
}

func (s *Str) Append(str string) {
	s.b = append(s.b, str...)
}

// Iter is a runtime iterator, produced and consumed by the evaluator.
type Iter struct {
	next func() (Value, bool)
}

func NewIter(next func() (Value, bool)) *Iter {
	return &Iter{next: next}
}

// Next yields the next value, or false when exhausted.
func (it *Iter) Next() (Value, bool) {
	if it.next == nil {
		return Nil, false
	}
	return it.next()
}

// Obj is a user-level object: an instance of a Class.
type Obj struct {
	class  *Class
	fields *Tab
}

func NewObj(class *Class) *Obj {
	return &Obj{class: class, fields: NewTab()}
}

func (o *Obj) ObjClass() *Class {
	return o.class
}

func (o *Obj) Fields() *Tab {
	return o.fields
}

// CoroState enumerates the lifecycle states of a coroutine.
type CoroState uint8

const (
	CoroNewborn CoroState = iota
	CoroRunning
	CoroPaused
	CoroFinished
)

// Coro is a runtime coroutine handle. Scheduling is owned by the
// evaluator; the boundary only passes the handle around.
type Coro struct {
	state CoroState
}

func NewCoro() *Coro {
	return &Coro{state: CoroNewborn}
}

func (c *Coro) State() CoroState {
	return c.state
}

func (c *Coro) SetState(s CoroState) {
	c.state = s
}
