// Package cancellation models buyer or vendor requests to cancel an order.
//
// A Request is created pending, decided (approved or rejected) and, once
// approved, processed. Processing is terminal for the order: no further
// cancellation or modification may be requested afterwards.
package cancellation
