// Package order holds the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: the aggregate root with line items, delivery address and version
//   - Status: the twelve lifecycle statuses and the edges between them
//   - Transition: the append-only history record produced by every status change
//   - TriggerEvent: system events mapped to automated transitions
//
// Key business rules:
//   - status only moves along a direct edge of the graph, never backwards
//   - canceled is reachable from every non-terminal status
//   - line items, address and delivery time change only in pending, to_pay,
//     paid and processing
package order
