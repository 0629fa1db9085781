package marshal

import (
	stderrors "errors"
	"math"
	"reflect"
	"strings"
	"testing"

	galeerr "github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/value"
)

func wantKind(t *testing.T, err error, kind galeerr.Kind) *galeerr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var ge *galeerr.Error
	if !stderrors.As(err, &ge) {
		t.Fatalf("expected structured error, got %T: %v", err, err)
	}
	if ge.Kind != kind {
		t.Fatalf("expected kind %s, got %s: %v", kind, ge.Kind, err)
	}
	return ge
}

func TestToValue_Primitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Nil},
		{"bool", true, value.BoolVal(true)},
		{"int", 42, value.IntVal(42)},
		{"int8", int8(-3), value.IntVal(-3)},
		{"int16", int16(300), value.IntVal(300)},
		{"int32", int32(7), value.IntVal(7)},
		{"int64", int64(9), value.IntVal(9)},
		{"uint8", uint8(200), value.IntVal(200)},
		{"uint16", uint16(40000), value.IntVal(40000)},
		{"uint32", uint32(11), value.IntVal(11)},
		{"float32", float32(1.5), value.FloatVal(1.5)},
		{"float64 truncates", 2.5, value.FloatVal(2.5)},
		{"char", value.Char('a'), value.CharVal('a')},
		{"sym", value.Sym("foo"), value.SymVal("foo")},
		{"nil pointer", (*int)(nil), value.Nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToValue(tt.in)
			if err != nil {
				t.Fatalf("ToValue(%v): %v", tt.in, err)
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("ToValue(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToValue_IntRange(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"int64 above", int64(math.MaxInt32) + 1},
		{"int64 below", int64(math.MinInt32) - 1},
		{"uint32 above", uint32(math.MaxInt32) + 1},
		{"uint64 above", uint64(math.MaxInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToValue(tt.in)
			ge := wantKind(t, err, galeerr.KindOutOfRange)
			if ge.Phase != galeerr.PhaseToValue {
				t.Errorf("expected to_value phase, got %s", ge.Phase)
			}
		})
	}
}

func TestToValue_FloatTruncation(t *testing.T) {
	// float64 narrows silently; it never fails the way integers do.
	in := 1.0000000001
	got, err := ToValue(in)
	if err != nil {
		t.Fatalf("ToValue(%v): %v", in, err)
	}
	f, ok := got.Float()
	if !ok {
		t.Fatalf("expected a flo, got %v", got)
	}
	if f != float32(in) {
		t.Errorf("got %v, want %v", f, float32(in))
	}
}

func TestToValue_Strings(t *testing.T) {
	got, err := ToValue("hello")
	if err != nil {
		t.Fatal(err)
	}
	s, ok := got.Str()
	if !ok || s.String() != "hello" {
		t.Fatalf("ToValue(string) = %v", got)
	}

	got, err = ToValue([]byte("raw\xff"))
	if err != nil {
		t.Fatal(err)
	}
	s, ok = got.Str()
	if !ok || string(s.Bytes()) != "raw\xff" {
		t.Fatalf("ToValue([]byte) = %v", got)
	}

	_, err = ToValue(CString("a\x00b"))
	wantKind(t, err, galeerr.KindEncoding)
}

func TestToValue_Containers(t *testing.T) {
	got, err := ToValue([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := got.Arr()
	if !ok || arr.Len() != 3 {
		t.Fatalf("ToValue(slice) = %v", got)
	}
	if !value.Equal(arr.At(2), value.IntVal(3)) {
		t.Errorf("elem 2 = %v", arr.At(2))
	}

	got, err = ToValue([2]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	arr, ok = got.Arr()
	if !ok || arr.Len() != 2 {
		t.Fatalf("ToValue(array) = %v", got)
	}

	got, err = ToValue(map[int32]int32{1: 10, 2: 20})
	if err != nil {
		t.Fatal(err)
	}
	tab, ok := got.Tab()
	if !ok || tab.Len() != 2 {
		t.Fatalf("ToValue(map) = %v", got)
	}
	if v, ok := tab.Get(value.IntVal(2)); !ok || !value.Equal(v, value.IntVal(20)) {
		t.Errorf("tab[2] = %v", v)
	}

	// nil containers convert as nil, not as empty containers
	if got, _ := ToValue([]int(nil)); !got.IsNil() {
		t.Errorf("nil slice = %v", got)
	}
	if got, _ := ToValue(map[string]int(nil)); !got.IsNil() {
		t.Errorf("nil map = %v", got)
	}

	// element failures propagate
	_, err = ToValue([]int64{1, math.MaxInt64})
	wantKind(t, err, galeerr.KindOutOfRange)
}

func TestToValue_Pointers(t *testing.T) {
	n := 5
	got, err := ToValue(&n)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.IntVal(5)) {
		t.Errorf("ToValue(*int) = %v", got)
	}
}

func TestToValue_PassThrough(t *testing.T) {
	arr := value.NewArr(value.IntVal(1))
	got, err := ToValue(value.ArrVal(arr))
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := got.Arr(); !ok || a != arr {
		t.Fatal("dynamic value should pass through unchanged")
	}

	got, err = ToValue(arr)
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := got.Arr(); !ok || a != arr {
		t.Fatal("heap handle should wrap without copying")
	}

	// nested inside a native container
	got, err = ToValue([]any{value.SymVal("x"), int32(2)})
	if err != nil {
		t.Fatal(err)
	}
	out, ok := got.Arr()
	if !ok {
		t.Fatal("expected an arr")
	}
	if !value.Equal(out.At(0), value.SymVal("x")) {
		t.Errorf("elem 0 = %v", out.At(0))
	}
}

func TestToValue_Errors(t *testing.T) {
	boom := stderrors.New("boom")
	_, err := ToValue(boom)
	ge := wantKind(t, err, galeerr.KindForeign)
	if !stderrors.Is(ge, boom) {
		t.Error("foreign error should keep its cause")
	}

	own := galeerr.TypeMismatch(galeerr.PhaseCall, "int8", "a str")
	_, err = ToValue(own)
	if err != own {
		t.Error("structured errors must pass through verbatim")
	}
}

func TestToValue_BoxFallback(t *testing.T) {
	type point struct{ X, Y int }
	got, err := ToValue(point{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	b, ok := got.Box()
	if !ok {
		t.Fatalf("expected a box, got %v", got)
	}
	if b.Type() != reflect.TypeOf(point{}) {
		t.Errorf("box type = %v", b.Type())
	}

	back, err := As[point](got)
	if err != nil {
		t.Fatal(err)
	}
	if back != (point{1, 2}) {
		t.Errorf("round trip = %v", back)
	}

	// extraction demands the exact boxed type
	type other struct{ X, Y int }
	_, err = As[other](got)
	ge := wantKind(t, err, galeerr.KindTypeMismatch)
	if !strings.Contains(ge.Error(), "a box of") {
		t.Errorf("error should name the boxed type: %v", ge)
	}
}

func TestToValue_Opt(t *testing.T) {
	got, err := ToValue(Some(int32(3)))
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.IntVal(3)) {
		t.Errorf("Some(3) = %v", got)
	}
	got, err = ToValue(None[int32]())
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsNil() {
		t.Errorf("None = %v", got)
	}
}

func TestFromValue_Ints(t *testing.T) {
	n, err := As[int32](value.IntVal(5))
	if err != nil || n != 5 {
		t.Fatalf("As[int32] = %v, %v", n, err)
	}
	if _, err := As[int8](value.IntVal(300)); err != nil {
		wantKind(t, err, galeerr.KindOutOfRange)
	} else {
		t.Fatal("int8 from 300 should fail")
	}
	_, err = As[uint8](value.IntVal(-1))
	wantKind(t, err, galeerr.KindOutOfRange)

	wide, err := As[int64](value.IntVal(-9))
	if err != nil || wide != -9 {
		t.Fatalf("As[int64] = %v, %v", wide, err)
	}

	_, err = As[int32](value.FloatVal(1.0))
	ge := wantKind(t, err, galeerr.KindTypeMismatch)
	if !strings.Contains(ge.Error(), "a flo") {
		t.Errorf("error should name the dynamic type: %v", ge)
	}
}

func TestFromValue_Floats(t *testing.T) {
	f, err := As[float32](value.FloatVal(1.5))
	if err != nil || f != 1.5 {
		t.Fatalf("As[float32] = %v, %v", f, err)
	}
	// ints coerce to floats on the way out
	f, err = As[float32](value.IntVal(2))
	if err != nil || f != 2 {
		t.Fatalf("As[float32](int) = %v, %v", f, err)
	}
	d, err := As[float64](value.FloatVal(1.5))
	if err != nil || d != 1.5 {
		t.Fatalf("As[float64] = %v, %v", d, err)
	}
	_, err = As[float32](value.BoolVal(true))
	wantKind(t, err, galeerr.KindTypeMismatch)
}

func TestFromValue_Bool(t *testing.T) {
	b, err := As[bool](value.BoolVal(true))
	if err != nil || !b {
		t.Fatalf("As[bool] = %v, %v", b, err)
	}
	// no truthiness: an int is not a bool
	_, err = As[bool](value.IntVal(1))
	wantKind(t, err, galeerr.KindTypeMismatch)
}

func TestFromValue_Strings(t *testing.T) {
	s, err := As[string](value.StrVal(value.NewStr("hi")))
	if err != nil || s != "hi" {
		t.Fatalf("As[string] = %q, %v", s, err)
	}

	_, err = As[string](value.StrVal(value.StrFromBytes([]byte{0xff, 0xfe})))
	wantKind(t, err, galeerr.KindEncoding)

	_, err = As[CString](value.StrVal(value.NewStr("a\x00b")))
	wantKind(t, err, galeerr.KindEncoding)

	cs, err := As[CString](value.StrVal(value.NewStr("ok")))
	if err != nil || cs != "ok" {
		t.Fatalf("As[CString] = %q, %v", cs, err)
	}

	b, err := As[[]byte](value.StrVal(value.StrFromBytes([]byte{0xff, 0x01})))
	if err != nil || len(b) != 2 {
		t.Fatalf("As[[]byte] = %v, %v", b, err)
	}
}

func TestFromValue_Containers(t *testing.T) {
	arr := value.NewArr(value.IntVal(1), value.IntVal(2))
	ns, err := As[[]int32](value.ArrVal(arr))
	if err != nil || len(ns) != 2 || ns[1] != 2 {
		t.Fatalf("As[[]int32] = %v, %v", ns, err)
	}

	_, err = As[[]int32](value.ArrVal(value.NewArr(value.IntVal(1), value.BoolVal(true))))
	wantKind(t, err, galeerr.KindTypeMismatch)

	_, err = As[[3]int32](value.ArrVal(arr))
	wantKind(t, err, galeerr.KindLengthMismatch)

	fixed, err := As[[2]int32](value.ArrVal(arr))
	if err != nil || fixed != [2]int32{1, 2} {
		t.Fatalf("As[[2]int32] = %v, %v", fixed, err)
	}

	tab := value.NewTab()
	tab.Set(value.IntVal(1), value.IntVal(10))
	tab.Set(value.IntVal(2), value.IntVal(20))
	m, err := As[map[int32]int32](value.TabVal(tab))
	if err != nil || len(m) != 2 || m[2] != 20 {
		t.Fatalf("As[map] = %v, %v", m, err)
	}
}

func TestFromValue_DuplicateKeys(t *testing.T) {
	// 1 and 1.0 are distinct tab keys but the same float32 key.
	tab := value.NewTab()
	tab.Set(value.IntVal(1), value.IntVal(10))
	tab.Set(value.FloatVal(1), value.IntVal(20))
	_, err := As[map[float32]int32](value.TabVal(tab))
	wantKind(t, err, galeerr.KindDuplicateKey)
}

func TestFromValue_Pointers(t *testing.T) {
	p, err := As[*int32](value.Nil)
	if err != nil || p != nil {
		t.Fatalf("As[*int32](nil) = %v, %v", p, err)
	}
	p, err = As[*int32](value.IntVal(4))
	if err != nil || p == nil || *p != 4 {
		t.Fatalf("As[*int32](4) = %v, %v", p, err)
	}
}

func TestFromValue_Opt(t *testing.T) {
	o, err := As[Opt[int32]](value.Nil)
	if err != nil || o.Ok {
		t.Fatalf("As[Opt](nil) = %v, %v", o, err)
	}
	o, err = As[Opt[int32]](value.IntVal(3))
	if err != nil || !o.Ok || o.Val != 3 {
		t.Fatalf("As[Opt](3) = %v, %v", o, err)
	}
	// a wrong payload type still fails; optionality is not leniency
	_, err = As[Opt[int32]](value.BoolVal(true))
	wantKind(t, err, galeerr.KindTypeMismatch)
}

func TestFromValue_Handles(t *testing.T) {
	arr := value.NewArr(value.IntVal(1))
	got, err := As[*value.Arr](value.ArrVal(arr))
	if err != nil || got != arr {
		t.Fatalf("As[*Arr] = %v, %v", got, err)
	}

	_, err = As[*value.Arr](value.IntVal(1))
	ge := wantKind(t, err, galeerr.KindTypeMismatch)
	if !strings.Contains(ge.Error(), "an int") {
		t.Errorf("error should name the dynamic type: %v", ge)
	}

	v, err := As[value.Value](value.IntVal(9))
	if err != nil || !value.Equal(v, value.IntVal(9)) {
		t.Fatalf("As[Value] = %v, %v", v, err)
	}

	fn := value.NewScriptFn("f", 0, 0, func(env *value.Env, args []value.Value) (value.Value, error) {
		return value.Nil, nil
	})
	c, err := As[value.Callable](value.ScriptFnVal(fn))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*value.ScriptFn); !ok {
		t.Fatalf("As[Callable] = %T", c)
	}
	_, err = As[value.Callable](value.IntVal(1))
	wantKind(t, err, galeerr.KindTypeMismatch)
}

func TestConverters_Custom(t *testing.T) {
	type rgb struct{ R, G, B uint8 }

	c := NewConverters()
	RegisterInto(c, func(v rgb) (value.Value, error) {
		return value.ArrVal(value.NewArr(
			value.IntVal(int32(v.R)), value.IntVal(int32(v.G)), value.IntVal(int32(v.B)),
		)), nil
	})
	RegisterFrom(c, func(v value.Value) (rgb, error) {
		arr, ok := v.Arr()
		if !ok || arr.Len() != 3 {
			return rgb{}, galeerr.TypeMismatch(galeerr.PhaseFromValue, "rgb", v.ATypeName())
		}
		r, _ := arr.At(0).Int()
		g, _ := arr.At(1).Int()
		b, _ := arr.At(2).Int()
		return rgb{uint8(r), uint8(g), uint8(b)}, nil
	})

	got, err := c.ToValue(rgb{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := got.Arr()
	if !ok || arr.Len() != 3 {
		t.Fatalf("custom into produced %v", got)
	}

	rv, err := c.FromValue(got, reflect.TypeOf(rgb{}))
	if err != nil {
		t.Fatal(err)
	}
	if rv.Interface().(rgb) != (rgb{1, 2, 3}) {
		t.Errorf("custom from = %v", rv)
	}

	// the default registry still boxes the same type
	plain, err := Default.ToValue(rgb{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plain.Box(); !ok {
		t.Errorf("default registry should box rgb, got %v", plain)
	}
}
