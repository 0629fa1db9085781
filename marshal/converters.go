package marshal

import (
	"reflect"

	"github.com/gale-lang/gale/value"
)

// Converters holds custom conversions keyed by Go type, one per
// direction. Registration is explicit: built-in rules are consulted only
// when no custom conversion exists for the exact type.
type Converters struct {
	into map[reflect.Type]func(reflect.Value) (value.Value, error)
	from map[reflect.Type]func(value.Value) (reflect.Value, error)
}

// Default is the registry used by the package-level ToValue, FromValue
// and As. Embeddings that need isolation can construct their own.
var Default = NewConverters()

// NewConverters returns an empty registry.
func NewConverters() *Converters {
	return &Converters{
		into: make(map[reflect.Type]func(reflect.Value) (value.Value, error)),
		from: make(map[reflect.Type]func(value.Value) (reflect.Value, error)),
	}
}

// RegisterInto installs a custom native-to-dynamic conversion for T,
// replacing any previous one.
func RegisterInto[T any](c *Converters, fn func(T) (value.Value, error)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.into[t] = func(rv reflect.Value) (value.Value, error) {
		return fn(rv.Interface().(T))
	}
}

// RegisterFrom installs a custom dynamic-to-native conversion for T,
// replacing any previous one.
func RegisterFrom[T any](c *Converters, fn func(value.Value) (T, error)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.from[t] = func(v value.Value) (reflect.Value, error) {
		out, err := fn(v)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(out), nil
	}
}

// CString is a string that converts with an interior-NUL check, for
// handing to APIs that treat NUL as a terminator. Extraction fails with
// an encoding error if the dynamic string contains a NUL byte.
type CString string

// Opt marks a value as optional. Converting an empty Opt produces nil;
// extracting nil produces an empty Opt. As a wrapped-function parameter
// it marks the argument as omissible.
type Opt[T any] struct {
	Val T
	Ok  bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] { return Opt[T]{Val: v, Ok: true} }

// None returns an empty Opt.
func None[T any]() Opt[T] { return Opt[T]{} }

// Get returns the payload and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.Val, o.Ok }

func (o Opt[T]) optPayload() (any, bool) { return o.Val, o.Ok }

func (Opt[T]) optElem() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// OptValue is implemented by every Opt instantiation. It lets reflective
// code detect and inspect optional values without knowing T.
type OptValue interface {
	optPayload() (any, bool)
	optElem() reflect.Type
}

// IsOptType reports whether t is an Opt instantiation.
func IsOptType(t reflect.Type) bool {
	return t.Implements(optType)
}

// OptElem returns the payload type of an Opt instantiation.
func OptElem(t reflect.Type) reflect.Type {
	return reflect.Zero(t).Interface().(OptValue).optElem()
}

var optType = reflect.TypeOf((*OptValue)(nil)).Elem()
