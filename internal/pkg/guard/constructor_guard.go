// Package guard provides a defensive construction check for command objects.
// Embedding a ConstructorGuard in a struct makes it possible to detect whether
// the struct was produced by its constructor or is an unvalidated zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a zero-value guard
// is validated with a nil error, so validation always fails with a meaningful
// message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// unconstructed and fails Validate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state. Call this only
// from the owning type's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guard was created via NewConstructorGuard.
// For a zero-value guard it returns err, or ErrDefaultConstructorGuard when
// err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
