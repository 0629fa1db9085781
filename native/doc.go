// Package native provides type-erased storage for host values crossing the
// gale boundary.
//
// A Box owns exactly one native value of arbitrary type. Scripts see a box
// as an opaque reference value; native code regains access through a
// runtime-checked borrow, since type erasure defeats Go's static aliasing
// guarantees at this boundary.
//
// # Borrow Discipline
//
// Any number of shared borrows may be outstanding at once, or exactly one
// exclusive borrow. A conflicting request fails immediately with a
// borrow_conflict error; nothing ever blocks or panics:
//
//	box := native.NewBox(Sprite{X: 1})
//
//	p, release, err := native.BorrowAs[Sprite](box)
//	if err != nil { ... }
//	defer release()
//	p.X += 1 // p is *Sprite
//
// # Ambient Globals
//
// A Registry stores at most one value per Go type and hands it out under
// the same borrow discipline. The registry is an explicit object owned by
// the call environment, not process-global state, so embeddings and tests
// stay isolated.
package native
