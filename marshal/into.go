package marshal

import (
	"bytes"
	"fmt"
	"math"
	"reflect"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/native"
	"github.com/gale-lang/gale/value"
)

// ToValue converts a native Go value into a dynamic value using the
// Default registry.
func ToValue(v any) (value.Value, error) {
	return Default.ToValue(v)
}

// ToValue converts a native Go value into a dynamic value. Dynamic
// values and heap handles pass through unchanged, primitives and
// containers convert by the built-in rules, and any remaining value is
// boxed as opaque native data.
func (c *Converters) ToValue(v any) (value.Value, error) {
	if v == nil {
		return value.Nil, nil
	}
	return c.toValue(reflect.ValueOf(v))
}

// passThrough handles values that are already dynamic, plus error-like
// outcomes. It reports false when the built-in conversion rules should
// take over.
func passThrough(v any) (value.Value, error, bool) {
	switch t := v.(type) {
	case value.Value:
		return t, nil, true
	case value.Sym:
		return value.SymVal(t), nil, true
	case value.Char:
		return value.CharVal(t), nil, true
	case value.Num:
		return value.NumVal(t), nil, true
	case *value.Arr:
		return value.ArrVal(t), nil, true
	case *value.Str:
		return value.StrVal(t), nil, true
	case *value.Tab:
		return value.TabVal(t), nil, true
	case *value.Iter:
		return value.IterVal(t), nil, true
	case *value.Obj:
		return value.ObjVal(t), nil, true
	case *value.Coro:
		return value.CoroVal(t), nil, true
	case *native.Box:
		return value.BoxVal(t), nil, true
	case *value.NativeFn:
		return value.FnVal(t), nil, true
	case *value.ScriptFn:
		return value.ScriptFnVal(t), nil, true
	case *value.Class:
		return value.ClassVal(t), nil, true
	case *errors.Error:
		// Structured failures cross the boundary verbatim.
		return value.Nil, t, true
	case error:
		return value.Nil, errors.Foreign(errors.PhaseToValue, fmt.Sprintf("%T", v), t), true
	}
	return value.Nil, nil, false
}

func (c *Converters) toValue(rv reflect.Value) (value.Value, error) {
	t := rv.Type()
	if fn, ok := c.into[t]; ok {
		return fn(rv)
	}
	if rv.CanInterface() {
		if out, err, ok := passThrough(rv.Interface()); ok {
			return out, err
		}
	}
	if IsOptType(t) {
		payload, ok := rv.Interface().(OptValue).optPayload()
		if !ok {
			return value.Nil, nil
		}
		return c.ToValue(payload)
	}
	if t == cstringType {
		s := rv.String()
		if bytes.IndexByte([]byte(s), 0) >= 0 {
			return value.Nil, errors.InteriorNul(errors.PhaseToValue)
		}
		return value.StrVal(value.NewStr(s)), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return value.BoolVal(rv.Bool()), nil

	case reflect.Int8, reflect.Int16, reflect.Int32:
		return value.IntVal(int32(rv.Int())), nil

	case reflect.Int, reflect.Int64:
		i := rv.Int()
		if i < math.MinInt32 || i > math.MaxInt32 {
			return value.Nil, errors.OutOfRange(errors.PhaseToValue, i, "int32")
		}
		return value.IntVal(int32(i)), nil

	case reflect.Uint8, reflect.Uint16:
		return value.IntVal(int32(rv.Uint())), nil

	case reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return value.Nil, errors.OutOfRange(errors.PhaseToValue, u, "int32")
		}
		return value.IntVal(int32(u)), nil

	case reflect.Float32:
		return value.FloatVal(float32(rv.Float())), nil

	case reflect.Float64:
		// Truncation to the runtime's 32-bit float is deliberate.
		return value.FloatVal(float32(rv.Float())), nil

	case reflect.String:
		return value.StrVal(value.NewStr(rv.String())), nil

	case reflect.Slice:
		if rv.IsNil() {
			return value.Nil, nil
		}
		if t == byteSlice {
			return value.StrVal(value.StrFromBytes(rv.Bytes())), nil
		}
		return c.seqToArr(rv)

	case reflect.Array:
		return c.seqToArr(rv)

	case reflect.Map:
		if rv.IsNil() {
			return value.Nil, nil
		}
		tab := value.NewTab()
		it := rv.MapRange()
		for it.Next() {
			k, err := c.toValue(it.Key())
			if err != nil {
				return value.Nil, err
			}
			v, err := c.toValue(it.Value())
			if err != nil {
				return value.Nil, err
			}
			tab.Set(k, v)
		}
		return value.TabVal(tab), nil

	case reflect.Pointer:
		if rv.IsNil() {
			return value.Nil, nil
		}
		return c.toValue(rv.Elem())

	case reflect.Interface:
		if rv.IsNil() {
			return value.Nil, nil
		}
		return c.toValue(rv.Elem())
	}

	// Universal fallback: the value becomes opaque native data.
	return value.BoxVal(native.NewBox(rv.Interface())), nil
}

func (c *Converters) seqToArr(rv reflect.Value) (value.Value, error) {
	n := rv.Len()
	arr := value.NewArrCap(n)
	for i := 0; i < n; i++ {
		elem, err := c.toValue(rv.Index(i))
		if err != nil {
			return value.Nil, err
		}
		arr.Push(elem)
	}
	return value.ArrVal(arr), nil
}
