// Package modification models change requests against an in-flight order.
//
// A Request carries two typed payloads of the same Type: the original data
// seen by the requester and the proposed new data. Requests move
// pending -> approved -> applied, or pending -> rejected. Applying writes the
// proposed payload into the order's mutable fields and never touches its status.
package modification
