package wrap

import (
	"reflect"

	"github.com/gale-lang/gale/marshal"
	"github.com/gale-lang/gale/value"
)

// Call invokes a callable from the host side: it converts each argument,
// pushes the frame onto env's stack and hands control to the callable.
func Call(env *value.Env, f value.Callable, args ...any) (value.Value, error) {
	vals, err := Args(args...)
	if err != nil {
		return value.Nil, err
	}
	for _, v := range vals {
		env.PushArg(v)
	}
	return f.ReceiveCall(env, len(vals))
}

// CallAs is Call with the result converted to R.
func CallAs[R any](env *value.Env, f value.Callable, args ...any) (R, error) {
	var zero R
	out, err := Call(env, f, args...)
	if err != nil {
		return zero, err
	}
	rv, err := marshal.FromValue(out, reflect.TypeOf(&zero).Elem())
	if err != nil {
		return zero, err
	}
	return rv.Interface().(R), nil
}
