package value

import (
	"github.com/gale-lang/gale/native"
)

// Env is the explicit call context for the boundary: the shared argument
// stack the evaluator and callables exchange frames through, plus the
// registry of ambient global singletons.
//
// The call model is single-threaded, synchronous and re-entrant; an Env
// must not be shared between goroutines.
type Env struct {
	Globals *native.Registry
	stack   []Value
}

func NewEnv() *Env {
	return &Env{
		Globals: native.NewRegistry(),
		stack:   make([]Value, 0, 16),
	}
}

// PushArg places one argument on the shared stack. The evaluator pushes
// argc arguments immediately before ReceiveCall(env, argc).
func (e *Env) PushArg(v Value) {
	e.stack = append(e.stack, v)
}

// Frame returns the top argc values of the stack: the current call's
// argument frame. The returned slice aliases the shared stack and is
// invalid once the frame ends.
func (e *Env) Frame(argc int) []Value {
	return e.stack[len(e.stack)-argc:]
}

// EndFrame pops the current argc-sized frame, releasing the shared
// region for re-entrant calls. Callees end their frame after staging and
// before their body runs.
func (e *Env) EndFrame(argc int) {
	n := len(e.stack) - argc
	for i := n; i < len(e.stack); i++ {
		e.stack[i] = Nil
	}
	e.stack = e.stack[:n]
}

// StackDepth returns the number of values currently on the shared stack.
func (e *Env) StackDepth() int {
	return len(e.stack)
}
