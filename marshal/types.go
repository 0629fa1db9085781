package marshal

import (
	"reflect"

	"github.com/gale-lang/gale/native"
	"github.com/gale-lang/gale/value"
)

var (
	valueType    = reflect.TypeOf(value.Value{})
	symType      = reflect.TypeOf(value.Sym(""))
	charType     = reflect.TypeOf(value.Char(0))
	numType      = reflect.TypeOf(value.Num{})
	cstringType  = reflect.TypeOf(CString(""))
	byteSlice    = reflect.TypeOf([]byte(nil))
	callableType = reflect.TypeOf((*value.Callable)(nil)).Elem()

	arrType   = reflect.TypeOf((*value.Arr)(nil))
	strType   = reflect.TypeOf((*value.Str)(nil))
	tabType   = reflect.TypeOf((*value.Tab)(nil))
	iterType  = reflect.TypeOf((*value.Iter)(nil))
	objType   = reflect.TypeOf((*value.Obj)(nil))
	coroType  = reflect.TypeOf((*value.Coro)(nil))
	boxType   = reflect.TypeOf((*native.Box)(nil))
	rfnType   = reflect.TypeOf((*value.NativeFn)(nil))
	fnType    = reflect.TypeOf((*value.ScriptFn)(nil))
	classType = reflect.TypeOf((*value.Class)(nil))
)
