package wrap

import (
	"reflect"

	"github.com/gale-lang/gale/errors"
	"github.com/gale-lang/gale/value"
)

// signature is the analyzed parameter list of a wrapped function: the
// classified parameters plus the argument count bounds they imply. Env
// and ambient global parameters consume no argument slot.
type signature struct {
	params   []param
	min, max int
	variadic bool
}

// analyze classifies a function's parameters and computes its argument
// bounds. Illegal orderings are rejected here, at construction, never at
// call time: a required parameter after an optional one, or any
// slot-consuming parameter after a rest parameter.
func analyze(ft reflect.Type) (signature, error) {
	sig := signature{variadic: ft.IsVariadic()}

	seenOpt := false
	seenRest := false
	for i := 0; i < ft.NumIn(); i++ {
		t := ft.In(i)

		var p param
		if sig.variadic && i == ft.NumIn()-1 {
			// a variadic tail is a rest parameter over its element type
			p = param{t: t, elem: t.Elem(), role: roleRest}
		} else {
			p = classify(t)
		}

		switch p.role {
		case roleEnv:
			if i != 0 {
				return sig, errors.BadSignature("parameter %d: *value.Env must be the first parameter", i)
			}

		case roleGlobal:
			// consumes no slot, legal anywhere

		case roleRest:
			if seenRest {
				return sig, errors.BadSignature("parameter %d: multiple rest parameters", i)
			}
			seenRest = true
			sig.max = value.NoMax

		case roleOpt:
			if seenRest {
				return sig, errors.BadSignature("parameter %d: optional parameter after rest parameter", i)
			}
			seenOpt = true
			sig.max++

		case roleValue, roleBorrow:
			if seenRest {
				return sig, errors.BadSignature("parameter %d: required parameter after rest parameter", i)
			}
			if seenOpt {
				return sig, errors.BadSignature("parameter %d: required parameter after optional parameter", i)
			}
			sig.min++
			sig.max++
		}

		sig.params = append(sig.params, p)
	}

	return sig, nil
}
