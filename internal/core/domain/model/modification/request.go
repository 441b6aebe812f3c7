package modification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("modification request must be created via NewRequest")

const entityName = "modification request"

// Request is a proposed change to an order.
type Request struct {
	id       kernel.UUID
	orderID  kernel.UUID
	original Payload
	proposed Payload
	reason   string
	status   Status

	createdAt time.Time
	decidedAt *time.Time
	appliedAt *time.Time

	isConstructed bool
}

// Snapshot carries the persisted state of a request.
type Snapshot struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Original  Payload
	Proposed  Payload
	Reason    string
	Status    Status
	CreatedAt time.Time
	DecidedAt *time.Time
	AppliedAt *time.Time
}

// NewRequest creates a pending request. The type comes from proposed; original
// must be of the same type.
func NewRequest(id, orderID kernel.UUID, original, proposed Payload, reason string, now time.Time) (*Request, error) {
	r := &Request{
		status:        StatusPending,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		r.setPayloads(original, proposed),
		r.setReason(reason),
	); err != nil {
		return nil, err
	}
	r.id, r.orderID = id, orderID

	return r, nil
}

// RestoreRequest rebuilds a stored request without re-running proposal rules.
func RestoreRequest(s Snapshot) (*Request, error) {
	if s.Proposed == nil || s.Original == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return nil, err
	}
	if err := errors.Join(s.ID.Validate(), s.OrderID.Validate()); err != nil {
		return nil, err
	}
	return &Request{
		id:            s.ID,
		orderID:       s.OrderID,
		original:      s.Original,
		proposed:      s.Proposed,
		reason:        s.Reason,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		decidedAt:     s.DecidedAt,
		appliedAt:     s.AppliedAt,
		isConstructed: true,
	}, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID       { return r.id }
func (r *Request) OrderID() kernel.UUID  { return r.orderID }
func (r *Request) Type() Type            { return r.proposed.Type() }
func (r *Request) Original() Payload     { return r.original }
func (r *Request) Proposed() Payload     { return r.proposed }
func (r *Request) Reason() string        { return r.reason }
func (r *Request) Status() Status        { return r.status }
func (r *Request) CreatedAt() time.Time  { return r.createdAt }
func (r *Request) DecidedAt() *time.Time { return r.decidedAt }
func (r *Request) AppliedAt() *time.Time { return r.appliedAt }

// IsPending reports whether the request still awaits a decision.
func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

// Approve moves a pending request to approved. The order is not touched.
func (r *Request) Approve(now time.Time) error {
	return r.decide(StatusApproved, "approve", now)
}

// Reject moves a pending request to rejected.
func (r *Request) Reject(now time.Time) error {
	return r.decide(StatusRejected, "reject", now)
}

// Apply writes the proposed payload into o and marks the request applied.
// On error neither the request nor the fields the payload covers are changed.
func (r *Request) Apply(o *order.Order, now time.Time) error {
	if r.status != StatusApproved {
		return errs.NewInvalidStateError(entityName, r.status.String(), "apply")
	}
	if !o.ID().IsEqual(r.orderID) {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("request %s belongs to order %s, not %s", r.id, r.orderID, o.ID()))
	}
	if err := r.proposed.ApplyTo(o, now); err != nil {
		return err
	}

	r.status = StatusApplied
	r.appliedAt = &now
	return nil
}

func (r *Request) decide(to Status, action string, now time.Time) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateError(entityName, r.status.String(), action)
	}
	r.status = to
	r.decidedAt = &now
	return nil
}

func (r *Request) setPayloads(original, proposed Payload) error {
	if proposed == nil {
		return errs.NewValueIsRequiredError("new data")
	}
	if err := proposed.Validate(); err != nil {
		return err
	}
	if original == nil {
		return errs.NewValueIsRequiredError("original data")
	}
	if original.Type() != proposed.Type() {
		return errs.NewValueIsInvalidErrorWithCause("original data",
			fmt.Errorf("type %s does not match %s", original.Type(), proposed.Type()))
	}
	r.original, r.proposed = original, proposed
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
