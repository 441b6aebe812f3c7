// Package kernel provides the shared value objects of the order lifecycle:
// identifiers, money in minor currency units and delivery addresses.
//
// All value objects are immutable, built through constructors that validate
// their invariants, and carry a guard.ConstructorGuard so that zero values are
// rejected by Validate.
package kernel
