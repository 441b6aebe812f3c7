// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries detect that they were built through their constructor
// rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Only NewConstructorGuard
// sets the flag, so a zero-value struct fails Validate.
//
// Example:
//
//	var ErrRefundNotConstructed = errors.New("Refund must be created via NewRefund")
//
//	type Refund struct {
//	    amount int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewRefund(amount int64) (Refund, error) {
//	    if amount < 0 {
//	        return Refund{}, errors.New("amount cannot be negative")
//	    }
//	    return Refund{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r Refund) Validate() error {
//	    return r.guard.Validate(ErrRefundNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
