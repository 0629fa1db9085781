package native

import (
	"reflect"

	"github.com/gale-lang/gale/errors"
)

// borrowState tracks outstanding access to a box or registry entry.
// shared counts concurrent shared borrows; exclusive marks the single
// permitted exclusive borrow.
type borrowState struct {
	shared    int
	exclusive bool
}

func (s *borrowState) acquireShared(typeName string) error {
	if s.exclusive {
		return errors.BorrowConflict(typeName, "shared", "exclusive")
	}
	s.shared++
	return nil
}

func (s *borrowState) acquireExclusive(typeName string) error {
	if s.exclusive {
		return errors.BorrowConflict(typeName, "exclusive", "exclusive")
	}
	if s.shared > 0 {
		return errors.BorrowConflict(typeName, "exclusive", "shared")
	}
	s.exclusive = true
	return nil
}

func (s *borrowState) idle() bool {
	return s.shared == 0 && !s.exclusive
}

// Box is a heap-allocated, type-erased container owning one native value.
// The zero Box is not usable; construct with NewBox.
type Box struct {
	val   reflect.Value // addressable copy of the stored value
	rtype reflect.Type
	state borrowState
	freed bool
}

// NewBox moves v into a fresh box. The box owns the value from this point;
// callers should not retain aliases to v's contents.
func NewBox(v any) *Box {
	rv := reflect.ValueOf(v)
	addr := reflect.New(rv.Type())
	addr.Elem().Set(rv)
	return &Box{
		val:   addr,
		rtype: rv.Type(),
	}
}

// Type returns the Go type of the boxed value.
func (b *Box) Type() reflect.Type {
	return b.rtype
}

// TypeName returns the boxed value's Go type name.
func (b *Box) TypeName() string {
	return b.rtype.String()
}

// Freed reports whether the boxed value has been moved out with Take.
func (b *Box) Freed() bool {
	return b.freed
}

// Borrow takes a shared borrow, returning a *T as any plus a release
// function. Callers must not mutate through the pointer.
func (b *Box) Borrow() (ptr any, release func(), err error) {
	if b.freed {
		return nil, nil, errors.New(errors.PhaseExtract, errors.KindNotRegistered).
			GoType(b.TypeName()).
			Detail("boxed value was already taken").
			Build()
	}
	if err := b.state.acquireShared(b.TypeName()); err != nil {
		return nil, nil, err
	}
	done := false
	return b.val.Interface(), func() {
		if !done {
			done = true
			b.state.shared--
		}
	}, nil
}

// BorrowMut takes an exclusive borrow, returning a *T as any plus a
// release function.
func (b *Box) BorrowMut() (ptr any, release func(), err error) {
	if b.freed {
		return nil, nil, errors.New(errors.PhaseExtract, errors.KindNotRegistered).
			GoType(b.TypeName()).
			Detail("boxed value was already taken").
			Build()
	}
	if err := b.state.acquireExclusive(b.TypeName()); err != nil {
		return nil, nil, err
	}
	done := false
	return b.val.Interface(), func() {
		if !done {
			done = true
			b.state.exclusive = false
		}
	}, nil
}

// Snapshot copies the boxed value out under a momentary shared borrow.
func (b *Box) Snapshot() (any, error) {
	_, release, err := b.Borrow()
	if err != nil {
		return nil, err
	}
	defer release()
	return b.val.Elem().Interface(), nil
}

// Take moves the value out of the box. It fails with a borrow conflict if
// any borrow is outstanding; afterwards every access to the box fails.
func (b *Box) Take() (any, error) {
	if b.freed {
		return nil, errors.New(errors.PhaseExtract, errors.KindNotRegistered).
			GoType(b.TypeName()).
			Detail("boxed value was already taken").
			Build()
	}
	if !b.state.idle() {
		out := "shared"
		if b.state.exclusive {
			out = "exclusive"
		}
		return nil, errors.BorrowConflict(b.TypeName(), "exclusive", out)
	}
	v := b.val.Elem().Interface()
	b.val.Elem().Set(reflect.Zero(b.rtype))
	b.freed = true
	return v, nil
}

// BorrowAs takes a shared borrow of a box known to hold T.
func BorrowAs[T any](b *Box) (*T, func(), error) {
	want := reflect.TypeOf((*T)(nil)).Elem()
	if b.rtype != want {
		return nil, nil, errors.TypeMismatch(errors.PhaseExtract, want.String(), "a box of "+b.TypeName())
	}
	ptr, release, err := b.Borrow()
	if err != nil {
		return nil, nil, err
	}
	return ptr.(*T), release, nil
}

// BorrowMutAs takes an exclusive borrow of a box known to hold T.
func BorrowMutAs[T any](b *Box) (*T, func(), error) {
	want := reflect.TypeOf((*T)(nil)).Elem()
	if b.rtype != want {
		return nil, nil, errors.TypeMismatch(errors.PhaseExtract, want.String(), "a box of "+b.TypeName())
	}
	ptr, release, err := b.BorrowMut()
	if err != nil {
		return nil, nil, err
	}
	return ptr.(*T), release, nil
}
