// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - OrderGate: the single answer to "can this order still be touched",
//     combining the order status with the order's cancellation history
package services
