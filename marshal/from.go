package marshal

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/value"
)

// FromValue converts a dynamic value into the requested native type
// using the Default registry.
func FromValue(v value.Value, t reflect.Type) (reflect.Value, error) {
	return Default.FromValue(v, t)
}

// As converts a dynamic value into T using the Default registry.
func As[T any](v value.Value) (T, error) {
	var zero T
	rv, err := Default.FromValue(v, reflect.TypeOf(&zero).Elem())
	if err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// FromValue converts a dynamic value into the requested native type. A
// registered custom conversion for t wins; otherwise the built-in rules
// apply, and a value of the wrong dynamic type fails with a
// type_mismatch naming both sides.
func (c *Converters) FromValue(v value.Value, t reflect.Type) (reflect.Value, error) {
	if fn, ok := c.from[t]; ok {
		return fn(v)
	}

	switch t {
	case valueType:
		return reflect.ValueOf(v), nil

	case symType:
		s, ok := v.Sym()
		if !ok {
			return bad(t, v)
		}
		return reflect.ValueOf(s), nil

	case charType:
		ch, ok := v.Char()
		if !ok {
			return bad(t, v)
		}
		return reflect.ValueOf(ch), nil

	case numType:
		n, ok := v.Num()
		if !ok {
			return bad(t, v)
		}
		return reflect.ValueOf(n), nil

	case cstringType:
		return c.fromStr(v, t, true)

	case byteSlice:
		s, ok := v.Str()
		if !ok {
			return bad(t, v)
		}
		b := make([]byte, s.Len())
		copy(b, s.Bytes())
		return reflect.ValueOf(b), nil

	case callableType:
		f, ok := v.Callable()
		if !ok {
			return bad(t, v)
		}
		return reflect.ValueOf(f), nil

	case arrType:
		if a, ok := v.Arr(); ok {
			return reflect.ValueOf(a), nil
		}
		return bad(t, v)
	case strType:
		if s, ok := v.Str(); ok {
			return reflect.ValueOf(s), nil
		}
		return bad(t, v)
	case tabType:
		if tb, ok := v.Tab(); ok {
			return reflect.ValueOf(tb), nil
		}
		return bad(t, v)
	case iterType:
		if it, ok := v.Iter(); ok {
			return reflect.ValueOf(it), nil
		}
		return bad(t, v)
	case objType:
		if o, ok := v.Obj(); ok {
			return reflect.ValueOf(o), nil
		}
		return bad(t, v)
	case coroType:
		if co, ok := v.Coro(); ok {
			return reflect.ValueOf(co), nil
		}
		return bad(t, v)
	case boxType:
		if b, ok := v.Box(); ok {
			return reflect.ValueOf(b), nil
		}
		return bad(t, v)
	case rfnType:
		if f, ok := v.NativeFn(); ok {
			return reflect.ValueOf(f), nil
		}
		return bad(t, v)
	case fnType:
		if f, ok := v.ScriptFn(); ok {
			return reflect.ValueOf(f), nil
		}
		return bad(t, v)
	case classType:
		if cl, ok := v.Class(); ok {
			return reflect.ValueOf(cl), nil
		}
		return bad(t, v)
	}

	if IsOptType(t) {
		out := reflect.New(t).Elem()
		if v.IsNil() {
			return out, nil
		}
		elem, err := c.FromValue(v, OptElem(t))
		if err != nil {
			return reflect.Value{}, err
		}
		out.FieldByName("Val").Set(elem)
		out.FieldByName("Ok").SetBool(true)
		return out, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		b, ok := v.Bool()
		if !ok {
			return bad(t, v)
		}
		out := reflect.New(t).Elem()
		out.SetBool(b)
		return out, nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int, reflect.Int64:
		i, ok := v.Int()
		if !ok {
			return bad(t, v)
		}
		out := reflect.New(t).Elem()
		if out.OverflowInt(int64(i)) {
			return reflect.Value{}, errors.OutOfRange(errors.PhaseFromValue, i, t.String())
		}
		out.SetInt(int64(i))
		return out, nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uint, reflect.Uintptr:
		i, ok := v.Int()
		if !ok {
			return bad(t, v)
		}
		if i < 0 {
			return reflect.Value{}, errors.OutOfRange(errors.PhaseFromValue, i, t.String())
		}
		out := reflect.New(t).Elem()
		if out.OverflowUint(uint64(i)) {
			return reflect.Value{}, errors.OutOfRange(errors.PhaseFromValue, i, t.String())
		}
		out.SetUint(uint64(i))
		return out, nil

	case reflect.Float32, reflect.Float64:
		n, ok := v.Num()
		if !ok {
			return bad(t, v)
		}
		out := reflect.New(t).Elem()
		out.SetFloat(float64(n.Float()))
		return out, nil

	case reflect.String:
		return c.fromStr(v, t, false)

	case reflect.Slice:
		a, ok := v.Arr()
		if !ok {
			return bad(t, v)
		}
		out := reflect.MakeSlice(t, a.Len(), a.Len())
		for i := 0; i < a.Len(); i++ {
			elem, err := c.FromValue(a.At(i), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case reflect.Array:
		a, ok := v.Arr()
		if !ok {
			return bad(t, v)
		}
		if a.Len() != t.Len() {
			return reflect.Value{}, errors.LengthMismatch(errors.PhaseFromValue, a.Len(), t.Len())
		}
		out := reflect.New(t).Elem()
		for i := 0; i < a.Len(); i++ {
			elem, err := c.FromValue(a.At(i), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case reflect.Map:
		tb, ok := v.Tab()
		if !ok {
			return bad(t, v)
		}
		out := reflect.MakeMapWithSize(t, tb.Len())
		var dup *errors.Error
		tb.Each(func(k, val value.Value) bool {
			nk, err := c.FromValue(k, t.Key())
			if err != nil {
				dup = asStructured(err)
				return false
			}
			nv, err := c.FromValue(val, t.Elem())
			if err != nil {
				dup = asStructured(err)
				return false
			}
			// Two distinct dynamic keys may collapse to one native key,
			// for example 1 and 1.0 both converting to float32.
			if out.MapIndex(nk).IsValid() {
				dup = errors.DuplicateKey(errors.PhaseFromValue, nk.Interface())
				return false
			}
			out.SetMapIndex(nk, nv)
			return true
		})
		if dup != nil {
			return reflect.Value{}, dup
		}
		return out, nil

	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(t), nil
		}
		elem, err := c.FromValue(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t.Elem())
		out.Elem().Set(elem)
		return out, nil
	}

	// Anything else must arrive as boxed native data of the exact type.
	if b, ok := v.Box(); ok {
		if b.Type() != t {
			return reflect.Value{}, errors.TypeMismatch(errors.PhaseFromValue, t.String(), "a box of "+b.TypeName())
		}
		snap, err := b.Snapshot()
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(snap), nil
	}
	return bad(t, v)
}

func (c *Converters) fromStr(v value.Value, t reflect.Type, checkNul bool) (reflect.Value, error) {
	s, ok := v.Str()
	if !ok {
		return bad(t, v)
	}
	b := s.Bytes()
	if !utf8.Valid(b) {
		return reflect.Value{}, errors.InvalidUTF8(errors.PhaseFromValue, b)
	}
	if checkNul && strings.IndexByte(string(b), 0) >= 0 {
		return reflect.Value{}, errors.InteriorNul(errors.PhaseFromValue)
	}
	out := reflect.New(t).Elem()
	out.SetString(string(b))
	return out, nil
}

func bad(t reflect.Type, v value.Value) (reflect.Value, error) {
	return reflect.Value{}, errors.TypeMismatch(errors.PhaseFromValue, t.String(), v.ATypeName())
}

func asStructured(err error) *errors.Error {
	if ge, ok := err.(*errors.Error); ok {
		return ge
	}
	return errors.Foreign(errors.PhaseFromValue, "", err)
}
