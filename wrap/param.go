package wrap

import (
	"reflect"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/marshal"
	"github.com/gale-lang/gale/native"
	"github.com/gale-lang/gale/value"
)

// Rest collects every remaining argument of a call. It must be the last
// parameter of a wrapped function. Passed as a call argument on the host
// side, it splices its elements instead of converting to a single arr.
type Rest[T any] []T

func (Rest[T]) restElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Ref gives a wrapped function shared access to boxed native data for
// the duration of the call. The corresponding argument must be a box of
// exactly T; the borrow is taken during staging and released when the
// call returns.
type Ref[T any] struct {
	Val *T
}

func (Ref[T]) borrowElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
func (Ref[T]) borrowExclusive() bool    { return false }

// Mut is Ref with exclusive access. The borrow fails immediately if any
// other borrow of the same box is outstanding.
type Mut[T any] struct {
	Val *T
}

func (Mut[T]) borrowElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
func (Mut[T]) borrowExclusive() bool    { return true }

// Global gives a wrapped function shared access to the ambient global of
// type T registered on the call's Env. It consumes no argument slot.
type Global[T any] struct {
	Val *T
}

func (Global[T]) globalElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
func (Global[T]) globalExclusive() bool    { return false }

// GlobalMut is Global with exclusive access.
type GlobalMut[T any] struct {
	Val *T
}

func (GlobalMut[T]) globalElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
func (GlobalMut[T]) globalExclusive() bool    { return true }

type restValue interface{ restElem() reflect.Type }

type borrowParam interface {
	borrowElem() reflect.Type
	borrowExclusive() bool
}

type globalParam interface {
	globalElem() reflect.Type
	globalExclusive() bool
}

var (
	restType   = reflect.TypeOf((*restValue)(nil)).Elem()
	borrowType = reflect.TypeOf((*borrowParam)(nil)).Elem()
	globalType = reflect.TypeOf((*globalParam)(nil)).Elem()
	envType    = reflect.TypeOf((*value.Env)(nil))
)

type paramRole int

const (
	roleValue paramRole = iota
	roleOpt
	roleRest
	roleBorrow
	roleGlobal
	roleEnv
)

type param struct {
	t         reflect.Type // declared parameter type
	elem      reflect.Type // payload type for opt, rest, borrow, global
	role      paramRole
	exclusive bool
}

func classify(t reflect.Type) param {
	switch {
	case t == envType:
		return param{t: t, role: roleEnv}
	case marshal.IsOptType(t):
		return param{t: t, elem: marshal.OptElem(t), role: roleOpt}
	case t.Implements(restType):
		return param{t: t, elem: reflect.Zero(t).Interface().(restValue).restElem(), role: roleRest}
	case t.Implements(borrowType):
		b := reflect.Zero(t).Interface().(borrowParam)
		return param{t: t, elem: b.borrowElem(), role: roleBorrow, exclusive: b.borrowExclusive()}
	case t.Implements(globalType):
		g := reflect.Zero(t).Interface().(globalParam)
		return param{t: t, elem: g.globalElem(), role: roleGlobal, exclusive: g.globalExclusive()}
	default:
		return param{t: t, role: roleValue}
	}
}

// stageBorrow takes the borrow a Ref or Mut parameter asks for and
// returns the populated parameter value plus the release.
func stageBorrow(p param, v value.Value) (reflect.Value, func(), error) {
	box, ok := v.Box()
	if !ok {
		return reflect.Value{}, nil, badBorrow(p, v.ATypeName())
	}
	if box.Type() != p.elem {
		return reflect.Value{}, nil, badBorrow(p, "a box of "+box.TypeName())
	}
	var (
		ptr     any
		release func()
		err     error
	)
	if p.exclusive {
		ptr, release, err = box.BorrowMut()
	} else {
		ptr, release, err = box.Borrow()
	}
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return fillPtr(p, ptr), release, nil
}

// stageGlobal fetches the ambient global a Global or GlobalMut parameter
// asks for from the env's registry.
func stageGlobal(p param, reg *native.Registry) (reflect.Value, func(), error) {
	var (
		ptr     any
		release func()
		err     error
	)
	if p.exclusive {
		ptr, release, err = reg.BorrowMut(p.elem)
	} else {
		ptr, release, err = reg.Borrow(p.elem)
	}
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return fillPtr(p, ptr), release, nil
}

func fillPtr(p param, ptr any) reflect.Value {
	out := reflect.New(p.t).Elem()
	out.FieldByName("Val").Set(reflect.ValueOf(ptr))
	return out
}

func badBorrow(p param, got string) *errors.Error {
	return errors.TypeMismatch(errors.PhaseExtract, "a box of "+p.elem.String(), got)
}
