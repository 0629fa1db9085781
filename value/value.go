package value

import (
	"fmt"
	"math"
	"strings"

	"github.com/gale-lang/gale/native"
)

// Kind tags the variants of the Value union.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindChar
	KindBool
	KindSym
	KindArr
	KindStr
	KindTab
	KindBox
	KindNativeFn
	KindScriptFn
	KindClass
	KindIter
	KindObj
	KindCoro
)

// Sym is an interned symbol. Interning itself belongs to the runtime's
// symbol table, which is external to this boundary; at the boundary a
// symbol is just its name.
type Sym string

// Char is the runtime character type. It is distinct from rune so that
// conversions can tell a character apart from a 32-bit integer.
type Char rune

// Num is the int-or-float union used where either numeric kind is
// acceptable.
type Num struct {
	Flo     float32
	Int     int32
	IsFloat bool
}

// Float returns the numeric payload as a float, converting ints.
func (n Num) Float() float32 {
	if n.IsFloat {
		return n.Flo
	}
	return float32(n.Int)
}

// Value is the runtime's tagged union. The zero Value is nil.
type Value struct {
	ref  any
	bits uint64
	kind Kind
}

// Nil is the nil value.
var Nil = Value{}

func IntVal(i int32) Value {
	return Value{kind: KindInt, bits: uint64(uint32(i))}
}

func FloatVal(f float32) Value {
	return Value{kind: KindFloat, bits: uint64(math.Float32bits(f))}
}

func CharVal(c Char) Value {
	return Value{kind: KindChar, bits: uint64(uint32(c))}
}

func BoolVal(b bool) Value {
	var bits uint64
	if b {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

func SymVal(s Sym) Value {
	return Value{kind: KindSym, ref: s}
}

func NumVal(n Num) Value {
	if n.IsFloat {
		return FloatVal(n.Flo)
	}
	return IntVal(n.Int)
}

func ArrVal(a *Arr) Value   { return Value{kind: KindArr, ref: a} }
func StrVal(s *Str) Value   { return Value{kind: KindStr, ref: s} }
func TabVal(t *Tab) Value   { return Value{kind: KindTab, ref: t} }
func IterVal(it *Iter) Value { return Value{kind: KindIter, ref: it} }
func ObjVal(o *Obj) Value   { return Value{kind: KindObj, ref: o} }
func CoroVal(c *Coro) Value { return Value{kind: KindCoro, ref: c} }

func BoxVal(b *native.Box) Value { return Value{kind: KindBox, ref: b} }

func FnVal(f *NativeFn) Value       { return Value{kind: KindNativeFn, ref: f} }
func ScriptFnVal(f *ScriptFn) Value { return Value{kind: KindScriptFn, ref: f} }
func ClassVal(c *Class) Value       { return Value{kind: KindClass, ref: c} }

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

func (v Value) Int() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int32(uint32(v.bits)), true
}

func (v Value) Float() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(v.bits)), true
}

func (v Value) Char() (Char, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return Char(uint32(v.bits)), true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.bits != 0, true
}

func (v Value) Sym() (Sym, bool) {
	if v.kind != KindSym {
		return "", false
	}
	return v.ref.(Sym), true
}

// Num returns the numeric payload for int and flo values.
func (v Value) Num() (Num, bool) {
	switch v.kind {
	case KindInt:
		return Num{Int: int32(uint32(v.bits))}, true
	case KindFloat:
		return Num{Flo: math.Float32frombits(uint32(v.bits)), IsFloat: true}, true
	default:
		return Num{}, false
	}
}

func (v Value) Arr() (*Arr, bool) {
	a, ok := v.ref.(*Arr)
	return a, ok && v.kind == KindArr
}

func (v Value) Str() (*Str, bool) {
	s, ok := v.ref.(*Str)
	return s, ok && v.kind == KindStr
}

func (v Value) Tab() (*Tab, bool) {
	t, ok := v.ref.(*Tab)
	return t, ok && v.kind == KindTab
}

func (v Value) Box() (*native.Box, bool) {
	b, ok := v.ref.(*native.Box)
	return b, ok && v.kind == KindBox
}

func (v Value) Iter() (*Iter, bool) {
	it, ok := v.ref.(*Iter)
	return it, ok && v.kind == KindIter
}

func (v Value) Obj() (*Obj, bool) {
	o, ok := v.ref.(*Obj)
	return o, ok && v.kind == KindObj
}

func (v Value) Coro() (*Coro, bool) {
	c, ok := v.ref.(*Coro)
	return c, ok && v.kind == KindCoro
}

func (v Value) NativeFn() (*NativeFn, bool) {
	f, ok := v.ref.(*NativeFn)
	return f, ok && v.kind == KindNativeFn
}

func (v Value) ScriptFn() (*ScriptFn, bool) {
	f, ok := v.ref.(*ScriptFn)
	return f, ok && v.kind == KindScriptFn
}

func (v Value) Class() (*Class, bool) {
	c, ok := v.ref.(*Class)
	return c, ok && v.kind == KindClass
}

// Callable extracts the callable union member, if v is one of the three
// invocable kinds. The dispatch is a closed match; no other kind is ever
// callable.
func (v Value) Callable() (Callable, bool) {
	switch v.kind {
	case KindNativeFn:
		return v.ref.(*NativeFn), true
	case KindScriptFn:
		return v.ref.(*ScriptFn), true
	case KindClass:
		return v.ref.(*Class), true
	default:
		return nil, false
	}
}

// Equal reports value equality: structural for primitives, identity for
// heap objects.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindInt, KindFloat, KindChar, KindBool:
		return a.bits == b.bits
	default:
		return a.ref == b.ref
	}
}

var kindNames = [...]string{
	KindNil:      "nil",
	KindInt:      "int",
	KindFloat:    "flo",
	KindChar:     "char",
	KindBool:     "bool",
	KindSym:      "sym",
	KindArr:      "arr",
	KindStr:      "str",
	KindTab:      "tab",
	KindBox:      "box",
	KindNativeFn: "rfn",
	KindScriptFn: "fn",
	KindClass:    "class",
	KindIter:     "iter",
	KindObj:      "obj",
	KindCoro:     "coro",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// TypeName returns the dynamic type's name.
func (v Value) TypeName() string {
	return v.kind.String()
}

// ATypeName returns the type name with its indefinite article, for error
// messages ("an int", "a str").
func (v Value) ATypeName() string {
	name := v.TypeName()
	switch name[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + name
	default:
		return "a " + name
	}
}

// String renders v for display. Heap objects render shallowly.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "#n"
	case KindInt:
		i, _ := v.Int()
		return fmt.Sprintf("%d", i)
	case KindFloat:
		f, _ := v.Float()
		return fmt.Sprintf("%g", f)
	case KindChar:
		c, _ := v.Char()
		return fmt.Sprintf("\\%c", rune(c))
	case KindBool:
		if v.bits != 0 {
			return "#t"
		}
		return "#f"
	case KindSym:
		s, _ := v.Sym()
		return string(s)
	case KindArr:
		a, _ := v.Arr()
		var b strings.Builder
		b.WriteByte('(')
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.At(i).String())
		}
		b.WriteByte(')')
		return b.String()
	case KindStr:
		s, _ := v.Str()
		return fmt.Sprintf("%q", s.String())
	case KindTab:
		t, _ := v.Tab()
		return fmt.Sprintf("#tab<%d>", t.Len())
	case KindBox:
		b, _ := v.Box()
		return fmt.Sprintf("#box<%s>", b.TypeName())
	case KindNativeFn, KindScriptFn, KindClass:
		c, _ := v.Callable()
		if name, ok := c.Name(); ok {
			return fmt.Sprintf("#%s<%s>", v.TypeName(), name)
		}
		return fmt.Sprintf("#%s", v.TypeName())
	default:
		return "#" + v.TypeName()
	}
}
