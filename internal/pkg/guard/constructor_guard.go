// Package guard holds the constructor guard used by value objects, entities,
// commands and queries to reject zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records that an object went through its constructor.
// Embed it as a field and call Validate from the object's own Validate method:
//
//	type Receipt struct {
//	    itemID kernel.UUID
//	    qty    int
//	    guard  guard.ConstructorGuard
//	}
//
//	func (r Receipt) Validate() error {
//	    return r.guard.Validate(ErrReceiptIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
