package value

import (
	"testing"

	"github.com/gale-lang/gale/native"
)

func TestValue_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		v     Value
		kind  Kind
		aName string
	}{
		{"nil", Nil, KindNil, "a nil"},
		{"int", IntVal(-7), KindInt, "an int"},
		{"float", FloatVal(2.5), KindFloat, "a flo"},
		{"char", CharVal('x'), KindChar, "a char"},
		{"bool", BoolVal(true), KindBool, "a bool"},
		{"sym", SymVal("hello"), KindSym, "a sym"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if tt.v.ATypeName() != tt.aName {
				t.Errorf("ATypeName = %q, want %q", tt.v.ATypeName(), tt.aName)
			}
		})
	}

	if i, ok := IntVal(-7).Int(); !ok || i != -7 {
		t.Errorf("Int() = %v, %v", i, ok)
	}
	if f, ok := FloatVal(2.5).Float(); !ok || f != 2.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if c, ok := CharVal('x').Char(); !ok || c != 'x' {
		t.Errorf("Char() = %v, %v", c, ok)
	}
	if b, ok := BoolVal(true).Bool(); !ok || !b {
		t.Errorf("Bool() = %v, %v", b, ok)
	}
	if s, ok := SymVal("hello").Sym(); !ok || s != "hello" {
		t.Errorf("Sym() = %v, %v", s, ok)
	}
	if _, ok := IntVal(1).Float(); ok {
		t.Error("Float() on an int should report false")
	}
}

func TestValue_Num(t *testing.T) {
	n, ok := IntVal(3).Num()
	if !ok || n.IsFloat || n.Int != 3 {
		t.Errorf("Num() of int = %+v, %v", n, ok)
	}
	n, ok = FloatVal(1.5).Num()
	if !ok || !n.IsFloat || n.Flo != 1.5 {
		t.Errorf("Num() of flo = %+v, %v", n, ok)
	}
	if _, ok := BoolVal(true).Num(); ok {
		t.Error("Num() of bool should report false")
	}
	if !Equal(NumVal(Num{Int: 3}), IntVal(3)) {
		t.Error("NumVal int should equal IntVal")
	}
}

func TestValue_Heap(t *testing.T) {
	arr := NewArr(IntVal(1), IntVal(2))
	v := ArrVal(arr)
	if got, ok := v.Arr(); !ok || got != arr {
		t.Fatal("Arr() should return the same handle")
	}
	if v.TypeName() != "arr" {
		t.Errorf("TypeName = %q", v.TypeName())
	}

	b := native.NewBox(42)
	bv := BoxVal(b)
	if got, ok := bv.Box(); !ok || got != b {
		t.Fatal("Box() should return the same handle")
	}
}

func TestEqual(t *testing.T) {
	a1 := NewArr()
	a2 := NewArr()

	tests := []struct {
		name string
		x, y Value
		eq   bool
	}{
		{"nil nil", Nil, Nil, true},
		{"int same", IntVal(5), IntVal(5), true},
		{"int diff", IntVal(5), IntVal(6), false},
		{"int vs float", IntVal(5), FloatVal(5), false},
		{"sym same", SymVal("a"), SymVal("a"), true},
		{"arr identity", ArrVal(a1), ArrVal(a1), true},
		{"arr distinct", ArrVal(a1), ArrVal(a2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.x, tt.y); got != tt.eq {
				t.Errorf("Equal = %v, want %v", got, tt.eq)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "#n"},
		{IntVal(10), "10"},
		{FloatVal(1.5), "1.5"},
		{BoolVal(true), "#t"},
		{BoolVal(false), "#f"},
		{SymVal("name"), "name"},
		{CharVal('q'), "\\q"},
		{ArrVal(NewArr(IntVal(1), IntVal(2))), "(1 2)"},
		{StrVal(NewStr("hi")), `"hi"`},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() of %v kind = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestArr(t *testing.T) {
	a := NewArr(IntVal(1))
	a.Push(IntVal(2))
	if a.Len() != 2 {
		t.Fatalf("Len = %d", a.Len())
	}
	a.Set(0, IntVal(9))
	if got := a.At(0); !Equal(got, IntVal(9)) {
		t.Errorf("At(0) = %v", got)
	}
	if got := a.At(5); !got.IsNil() {
		t.Errorf("At out of range = %v, want nil", got)
	}
}

func TestStr(t *testing.T) {
	s := NewStr("ab")
	s.Append("cd")
	if s.String() != "abcd" || s.Len() != 4 {
		t.Errorf("Str = %q len %d", s.String(), s.Len())
	}

	raw := StrFromBytes([]byte{0xff, 0x00})
	if raw.Len() != 2 {
		t.Errorf("raw Len = %d", raw.Len())
	}
}

func TestIter(t *testing.T) {
	i := 0
	it := NewIter(func() (Value, bool) {
		if i >= 2 {
			return Nil, false
		}
		i++
		return IntVal(int32(i)), true
	})

	var got []Value
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || !Equal(got[1], IntVal(2)) {
		t.Errorf("iterated %v", got)
	}
}
