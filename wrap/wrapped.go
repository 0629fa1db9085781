package wrap

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/marshal"
	"github.com/gale-lang/gale/value"
)

type retShape int

const (
	retNone retShape = iota
	retVal
	retErr
	retValErr
)

// Wrapped adapts a plain Go function to the boundary's invocation
// protocol. Its parameter list is analyzed once at construction; every
// call then checks argument bounds, stages each parameter through the
// conversion protocol, releases the argument frame, and invokes the
// function through reflection.
type Wrapped struct {
	fn   reflect.Value
	conv *marshal.Converters
	sig  signature
	ret  retShape
	name string
}

// New analyzes fn and wraps it using the Default converter registry.
// Supported shapes: any parameter list of convertible types, Opt, Rest,
// Ref, Mut, Global and GlobalMut parameters, an optional leading
// *value.Env, and results () / (T) / (error) / (T, error). A Go variadic
// tail behaves as a rest parameter.
func New(name string, fn any) (*Wrapped, error) {
	return NewWith(marshal.Default, name, fn)
}

// NewWith is New with an explicit converter registry.
func NewWith(conv *marshal.Converters, name string, fn any) (*Wrapped, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return nil, errors.BadSignature("cannot wrap %T: not a function", fn)
	}
	ft := rv.Type()

	sig, err := analyze(ft)
	if err != nil {
		return nil, err
	}

	ret, err := analyzeResults(ft)
	if err != nil {
		return nil, err
	}

	w := &Wrapped{fn: rv, conv: conv, sig: sig, ret: ret, name: name}
	Logger().Debug("wrapped native function",
		zap.String("name", name),
		zap.Int("min_args", sig.min),
		zap.Int("max_args", sig.max))
	return w, nil
}

func analyzeResults(ft reflect.Type) (retShape, error) {
	switch ft.NumOut() {
	case 0:
		return retNone, nil
	case 1:
		if ft.Out(0) == errType {
			return retErr, nil
		}
		return retVal, nil
	case 2:
		if ft.Out(1) != errType {
			return 0, errors.BadSignature("second result must be error, got %s", ft.Out(1))
		}
		return retValErr, nil
	default:
		return 0, errors.BadSignature("too many results: %d", ft.NumOut())
	}
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Fn wraps fn and binds it as a named native callable.
func Fn(name string, fn any) (*value.NativeFn, error) {
	w, err := New(name, fn)
	if err != nil {
		return nil, err
	}
	return value.NewNativeFn(value.Sym(name), w), nil
}

// MustFn is Fn that panics on a bad signature. Intended for binding
// tables built at startup.
func MustFn(name string, fn any) *value.NativeFn {
	f, err := Fn(name, fn)
	if err != nil {
		panic(err)
	}
	return f
}

// ArgLimits returns the wrapped function's argument count bounds.
func (w *Wrapped) ArgLimits() (min, max int) {
	return w.sig.min, w.sig.max
}

// Name returns the name the function was wrapped under.
func (w *Wrapped) Name() string {
	return w.name
}

// Invoke runs the wrapped function against the current argument frame.
// The frame is copied and ended before any conversion runs, so both
// conversions and the function body can re-enter the boundary. Borrows
// taken for Ref, Mut and ambient global parameters are held for the
// duration of the call and released before the result converts.
func (w *Wrapped) Invoke(env *value.Env, args []value.Value) (value.Value, error) {
	argc := len(args)
	if argc < w.sig.min {
		env.EndFrame(argc)
		return value.Nil, errors.TooFewArgs(argc, w.sig.min)
	}
	if w.sig.max != value.NoMax && argc > w.sig.max {
		env.EndFrame(argc)
		return value.Nil, errors.TooManyArgs(argc, w.sig.max)
	}

	own := make([]value.Value, argc)
	copy(own, args)
	env.EndFrame(argc)

	in := make([]reflect.Value, 0, len(w.sig.params))
	var releases []func()
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()

	slot := 0
	for _, p := range w.sig.params {
		switch p.role {
		case roleEnv:
			in = append(in, reflect.ValueOf(env))

		case roleGlobal:
			rv, release, err := stageGlobal(p, env.Globals)
			if err != nil {
				return value.Nil, err
			}
			releases = append(releases, release)
			in = append(in, rv)

		case roleBorrow:
			rv, release, err := stageBorrow(p, own[slot])
			slot++
			if err != nil {
				return value.Nil, err
			}
			releases = append(releases, release)
			in = append(in, rv)

		case roleValue:
			rv, err := w.conv.FromValue(own[slot], p.t)
			slot++
			if err != nil {
				return value.Nil, err
			}
			in = append(in, rv)

		case roleOpt:
			if slot >= argc {
				in = append(in, reflect.New(p.t).Elem())
				break
			}
			rv, err := w.conv.FromValue(own[slot], p.t)
			slot++
			if err != nil {
				return value.Nil, err
			}
			in = append(in, rv)

		case roleRest:
			n := argc - slot
			rest := reflect.MakeSlice(p.t, n, n)
			for i := 0; i < n; i++ {
				rv, err := w.conv.FromValue(own[slot+i], p.elem)
				if err != nil {
					return value.Nil, err
				}
				rest.Index(i).Set(rv)
			}
			slot = argc
			in = append(in, rest)
		}
	}

	var outs []reflect.Value
	if w.sig.variadic {
		outs = w.fn.CallSlice(in)
	} else {
		outs = w.fn.Call(in)
	}

	// drop borrows before converting the result, so the function may
	// return the box it borrowed from
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}

	switch w.ret {
	case retNone:
		return value.Nil, nil
	case retErr:
		return value.Nil, w.callErr(outs[0])
	case retVal:
		return w.conv.ToValue(outs[0].Interface())
	default:
		if err := w.callErr(outs[1]); err != nil {
			return value.Nil, err
		}
		return w.conv.ToValue(outs[0].Interface())
	}
}

func (w *Wrapped) callErr(rv reflect.Value) error {
	if rv.IsNil() {
		return nil
	}
	err := rv.Interface().(error)
	if ge, ok := err.(*errors.Error); ok {
		return ge
	}
	return errors.Foreign(errors.PhaseCall, fmt.Sprintf("%T", err), err)
}
