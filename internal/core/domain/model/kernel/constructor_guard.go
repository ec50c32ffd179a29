package kernel

import "errors"

// ErrDefaultConstructorGuard is the fallback error returned by
// ConstructorGuard.Validate when no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard enforces that domain entities and value objects are only
// created through their designated constructor functions. A zero-value struct
// carries a zero-value guard and fails Validate, which prevents unvalidated
// instances from entering the domain model.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns err, falling back to ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
