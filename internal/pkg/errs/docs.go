// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for each failure class of the order lifecycle:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed
//     or missing input, all of them match ErrValidation
//   - ObjectNotFoundError: an order, request or schedule does not exist
//   - AlreadyExistsError: an insert hit an existing primary key
//   - NotModifiableError: the order no longer accepts change requests
//   - InvalidStateError: a request or schedule is not in the state an action needs
//   - InvalidTransitionError: the order status graph has no such edge
//   - VersionConflictError: a compare-and-set write lost against a concurrent writer
//   - UpstreamError: the carrier API failed or timed out
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, never by message.
package errs
