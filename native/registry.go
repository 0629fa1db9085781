package native

import (
	"reflect"

	"github.com/gale-lang/gale/errors"
)

// Registry stores ambient global singletons, at most one value per Go
// type, handed out under the same dynamic borrow discipline as a Box.
//
// The call model is single-threaded and re-entrant, so the registry does
// no locking; conflicts come from re-entrant borrows, not data races.
type Registry struct {
	entries map[reflect.Type]*entry
}

type entry struct {
	val   reflect.Value // *T
	state borrowState
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]*entry)}
}

// Put registers v as the singleton for its type, replacing any previous
// value. Replacement fails if the previous value is currently borrowed.
func (r *Registry) Put(v any) error {
	rv := reflect.ValueOf(v)
	t := rv.Type()
	if prev, ok := r.entries[t]; ok && !prev.state.idle() {
		return errors.BorrowConflict(t.String(), "exclusive", outstanding(&prev.state))
	}
	addr := reflect.New(t)
	addr.Elem().Set(rv)
	r.entries[t] = &entry{val: addr}
	return nil
}

// Remove deletes the singleton for type t. It fails if a borrow is
// outstanding, and reports not_registered if no value is present.
func (r *Registry) Remove(t reflect.Type) (any, error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, errors.NotRegistered(t.String())
	}
	if !e.state.idle() {
		return nil, errors.BorrowConflict(t.String(), "exclusive", outstanding(&e.state))
	}
	delete(r.entries, t)
	return e.val.Elem().Interface(), nil
}

// Has reports whether a singleton of type t is registered.
func (r *Registry) Has(t reflect.Type) bool {
	_, ok := r.entries[t]
	return ok
}

// Len returns the number of registered singletons.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Borrow takes a shared borrow of the singleton for type t, returning a
// *T as any plus a release function.
func (r *Registry) Borrow(t reflect.Type) (ptr any, release func(), err error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, nil, errors.NotRegistered(t.String())
	}
	if err := e.state.acquireShared(t.String()); err != nil {
		return nil, nil, err
	}
	done := false
	return e.val.Interface(), func() {
		if !done {
			done = true
			e.state.shared--
		}
	}, nil
}

// BorrowMut takes an exclusive borrow of the singleton for type t.
func (r *Registry) BorrowMut(t reflect.Type) (ptr any, release func(), err error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, nil, errors.NotRegistered(t.String())
	}
	if err := e.state.acquireExclusive(t.String()); err != nil {
		return nil, nil, err
	}
	done := false
	return e.val.Interface(), func() {
		if !done {
			done = true
			e.state.exclusive = false
		}
	}, nil
}

func outstanding(s *borrowState) string {
	if s.exclusive {
		return "exclusive"
	}
	return "shared"
}
