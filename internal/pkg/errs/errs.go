package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every input validation error
	// (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError).
	ErrValidation = errors.New("validation failed")

	ErrObjectNotFound    = errors.New("object not found")
	ErrAlreadyExists     = errors.New("object already exists")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionConflict   = errors.New("version conflict")
	ErrNotModifiable     = errors.New("order is not modifiable")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUpstreamTimeout   = errors.New("upstream timeout")
	ErrUpstreamFailure   = errors.New("upstream failure")
	ErrRateLimited       = errors.New("rate limited")
	ErrUpstreamRejected  = errors.New("upstream rejected request")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, cause.Error())
}

// ObjectNotFoundError reports a missing aggregate or record.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(fmt.Sprintf("%s: param is: %s, ID is: %s",
			ErrObjectNotFound.Error(), e.ParamName, e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound.Error(), e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AlreadyExistsError reports an insert that collided with an existing record.
type AlreadyExistsError struct {
	Entity string
	ID     any
	Cause  error
}

func NewAlreadyExistsError(entity string, id any, cause error) *AlreadyExistsError {
	return &AlreadyExistsError{Entity: entity, ID: id, Cause: cause}
}

func (e *AlreadyExistsError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrAlreadyExists.Error(), e.Entity, sanitize(e.ID)), e.Cause)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// ValueIsInvalidError reports a malformed input value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid.Error(), e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

func (e *ValueIsInvalidError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid.Error(), sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

func (e *ValueIsOutOfRangeError) Is(target error) bool {
	return target == ErrValidation
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired.Error(), e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

func (e *ValueIsRequiredError) Is(target error) bool {
	return target == ErrValidation
}

// VersionConflictError is returned when a compare-and-set write finds that the
// stored version no longer matches the version the aggregate was loaded with.
type VersionConflictError struct {
	Entity   string
	ID       any
	Expected int64
}

func NewVersionConflictError(entity string, id any, expected int64) *VersionConflictError {
	return &VersionConflictError{Entity: entity, ID: id, Expected: expected}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was changed concurrently (expected version %d)",
		ErrVersionConflict.Error(), e.Entity, sanitize(e.ID), e.Expected)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// NotModifiableError is returned when an order no longer accepts
// modification or cancellation requests.
type NotModifiableError struct {
	OrderID any
	Status  string
	Reason  string
}

func NewNotModifiableError(orderID any, status string) *NotModifiableError {
	return &NotModifiableError{OrderID: orderID, Status: status}
}

func NewNotModifiableErrorWithReason(orderID any, status, reason string) *NotModifiableError {
	return &NotModifiableError{OrderID: orderID, Status: status, Reason: reason}
}

func (e *NotModifiableError) Error() string {
	msg := fmt.Sprintf("%s: order %s is in %s status", ErrNotModifiable.Error(), sanitize(e.OrderID), e.Status)
	if e.Reason != "" {
		msg += ", " + e.Reason
	}
	return msg
}

func (e *NotModifiableError) Unwrap() error {
	return ErrNotModifiable
}

// InvalidStateError is returned when a lifecycle action is attempted from a
// state that does not allow it.
type InvalidStateError struct {
	Entity string
	State  string
	Action string
}

func NewInvalidStateError(entity, state, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Action: action}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in %s state", ErrInvalidState.Error(), e.Action, e.Entity, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidTransitionError is returned when the target status is not a direct
// successor of the current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UpstreamError wraps a failed call to the carrier API. It matches
// ErrUpstreamTimeout or ErrUpstreamFailure and also exposes the cause.
type UpstreamError struct {
	Operation string
	Attempts  int
	Timeout   bool
	Cause     error
}

func NewUpstreamError(operation string, attempts int, cause error) *UpstreamError {
	return &UpstreamError{
		Operation: operation,
		Attempts:  attempts,
		Timeout:   isTimeout(cause),
		Cause:     cause,
	}
}

func (e *UpstreamError) Error() string {
	sentinel := ErrUpstreamFailure
	if e.Timeout {
		sentinel = ErrUpstreamTimeout
	}
	return withCause(fmt.Sprintf("%s: %s after %d attempt(s)", sentinel.Error(), e.Operation, e.Attempts), e.Cause)
}

func (e *UpstreamError) Unwrap() []error {
	sentinel := ErrUpstreamFailure
	if e.Timeout {
		sentinel = ErrUpstreamTimeout
	}
	if e.Cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Cause}
}

// UpstreamRejectedError is a client-side failure reported by the carrier
// (4xx other than 408 and 429). Repeating the same request cannot succeed.
type UpstreamRejectedError struct {
	Status  int
	Message string
}

func NewUpstreamRejectedError(status int, message string) *UpstreamRejectedError {
	return &UpstreamRejectedError{Status: status, Message: message}
}

func (e *UpstreamRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrUpstreamRejected.Error(), e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrUpstreamRejected.Error(), e.Status, sanitize(e.Message))
}

func (e *UpstreamRejectedError) Unwrap() error {
	return ErrUpstreamRejected
}

type timeout interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUpstreamTimeout) {
		return true
	}
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}
