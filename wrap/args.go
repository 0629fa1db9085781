package wrap

import (
	"reflect"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/marshal"
	"github.com/gale-lang/gale/value"
)

// Args converts a host-side argument list into dynamic values. A Rest
// argument splices its elements into the list instead of converting to
// one arr.
//
// On failure the returned slice still has one entry per intended
// argument, with nil standing in at and after the failed position, and
// the error is the first conversion failure. Callers that want to push
// a partially built frame for diagnostics can rely on its length.
func Args(vals ...any) ([]value.Value, error) {
	return ArgsWith(marshal.Default, vals...)
}

// ArgsWith is Args with an explicit converter registry.
func ArgsWith(conv *marshal.Converters, vals ...any) ([]value.Value, error) {
	out := make([]value.Value, 0, len(vals))
	var firstErr error

	push := func(v any) {
		if firstErr != nil {
			out = append(out, value.Nil)
			return
		}
		converted, err := conv.ToValue(v)
		if err != nil {
			firstErr = err
			out = append(out, value.Nil)
			return
		}
		out = append(out, converted)
	}

	for _, v := range vals {
		if v != nil {
			if r, ok := v.(restValue); ok {
				rv := reflect.ValueOf(r)
				for i := 0; i < rv.Len(); i++ {
					push(rv.Index(i).Interface())
				}
				continue
			}
		}
		push(v)
	}
	return out, firstErr
}

// ArgsFrom converts the elements of a slice or array into an argument
// list, with the same error behavior as Args.
func ArgsFrom(seq any) ([]value.Value, error) {
	rv := reflect.ValueOf(seq)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, errors.BadSignature("cannot build arguments from %T", seq)
	}
	vals := make([]any, rv.Len())
	for i := range vals {
		vals[i] = rv.Index(i).Interface()
	}
	return Args(vals...)
}
