package cancellation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("cancellation request must be created via NewRequest")

const entityName = "cancellation request"

// RefundType selects how much of the order total is refunded.
type RefundType string

const (
	RefundFull    RefundType = "full"
	RefundPartial RefundType = "partial"
	RefundNone    RefundType = "none"
)

func ParseRefundType(s string) (RefundType, error) {
	rt := RefundType(strings.ToLower(strings.TrimSpace(s)))
	switch rt {
	case RefundFull, RefundPartial, RefundNone:
		return rt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("refund type", fmt.Errorf("%q is not supported", s))
	}
}

func (t RefundType) String() string { return string(t) }

// Status of a cancellation request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusProcessed Status = "processed"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusProcessed:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("cancellation status", fmt.Errorf("%q is not supported", s))
	}
}

func (s Status) String() string { return string(s) }

// Request is a cancellation of one order with its refund decision.
type Request struct {
	id         kernel.UUID
	orderID    kernel.UUID
	reason     string
	refundType RefundType
	refund     kernel.Money
	status     Status

	createdAt   time.Time
	decidedAt   *time.Time
	processedAt *time.Time

	isConstructed bool
}

// Snapshot carries the persisted state of a request.
type Snapshot struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Reason       string
	RefundType   RefundType
	RefundAmount int64
	Currency     string
	Status       Status
	CreatedAt    time.Time
	DecidedAt    *time.Time
	ProcessedAt  *time.Time
}

// NewRequest creates a pending request against an order whose total is
// orderTotal. A full refund is forced to the total and no refund to zero; a
// partial refund must satisfy 0 < amount <= total.
func NewRequest(
	id, orderID kernel.UUID,
	orderTotal kernel.Money,
	reason string,
	refundType RefundType,
	amount int64,
	now time.Time,
) (*Request, error) {
	r := &Request{
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		orderTotal.Validate(),
		r.setReason(reason),
	); err != nil {
		return nil, err
	}
	if err := r.setRefund(orderTotal, refundType, amount); err != nil {
		return nil, err
	}
	r.id, r.orderID = id, orderID

	return r, nil
}

// RestoreRequest rebuilds a stored request.
func RestoreRequest(s Snapshot) (*Request, error) {
	refund, err := kernel.NewMoney(s.RefundAmount, s.Currency)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(s.ID.Validate(), s.OrderID.Validate()); err != nil {
		return nil, err
	}
	if _, err = ParseRefundType(string(s.RefundType)); err != nil {
		return nil, err
	}
	if _, err = ParseStatus(string(s.Status)); err != nil {
		return nil, err
	}
	return &Request{
		id:            s.ID,
		orderID:       s.OrderID,
		reason:        s.Reason,
		refundType:    s.RefundType,
		refund:        refund,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		decidedAt:     s.DecidedAt,
		processedAt:   s.ProcessedAt,
		isConstructed: true,
	}, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID         { return r.id }
func (r *Request) OrderID() kernel.UUID    { return r.orderID }
func (r *Request) Reason() string          { return r.reason }
func (r *Request) RefundType() RefundType  { return r.refundType }
func (r *Request) Refund() kernel.Money    { return r.refund }
func (r *Request) Status() Status          { return r.status }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) DecidedAt() *time.Time   { return r.decidedAt }
func (r *Request) ProcessedAt() *time.Time { return r.processedAt }

// IsProcessed reports whether the refund has been issued and the order closed.
func (r *Request) IsProcessed() bool {
	return r.status == StatusProcessed
}

// Decide approves or rejects a pending request.
func (r *Request) Decide(approved bool, now time.Time) error {
	to, action := StatusRejected, "reject"
	if approved {
		to, action = StatusApproved, "approve"
	}
	if r.status != StatusPending {
		return errs.NewInvalidStateError(entityName, r.status.String(), action)
	}
	r.status = to
	r.decidedAt = &now
	return nil
}

// MarkProcessed records that the refund was issued.
func (r *Request) MarkProcessed(now time.Time) error {
	if r.status != StatusApproved {
		return errs.NewInvalidStateError(entityName, r.status.String(), "process")
	}
	r.status = StatusProcessed
	r.processedAt = &now
	return nil
}

func (r *Request) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	r.reason = reason
	return nil
}

func (r *Request) setRefund(total kernel.Money, refundType RefundType, amount int64) error {
	switch refundType {
	case RefundFull:
		amount = total.Amount()
	case RefundNone:
		amount = 0
	case RefundPartial:
		if amount <= 0 || amount > total.Amount() {
			return errs.NewValueIsOutOfRangeError("refund amount", amount, 1, total.Amount())
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("refund type", fmt.Errorf("%q is not supported", refundType))
	}

	refund, err := total.WithAmount(amount)
	if err != nil {
		return err
	}
	r.refundType = refundType
	r.refund = refund
	return nil
}
