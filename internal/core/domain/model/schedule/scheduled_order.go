package schedule

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrScheduledOrderIsNotConstructed = errors.New("scheduled order must be created via NewScheduledOrder")

const entityName = "scheduled order"

// Status of a scheduled order.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPaused    Status = "paused"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusScheduled, StatusPaused, StatusCanceled, StatusCompleted:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("schedule status", fmt.Errorf("%q is not supported", s))
	}
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether the schedule can no longer run.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// ScheduledOrder is a deferred, optionally recurring, order intent.
type ScheduledOrder struct {
	id       kernel.UUID
	buyerID  kernel.UUID
	vendorID kernel.UUID

	scheduledFor time.Time
	recurrence   *Recurrence
	cart         CartSnapshot
	preferences  DeliveryPreferences
	status       Status

	nextExecutionAt time.Time
	lastExecutedAt  *time.Time
	executions      int
	lastOrderID     *kernel.UUID

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Snapshot carries the persisted state of a scheduled order.
type Snapshot struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	VendorID        kernel.UUID
	ScheduledFor    time.Time
	Recurrence      *Recurrence
	Cart            CartSnapshot
	Preferences     DeliveryPreferences
	Status          Status
	NextExecutionAt time.Time
	LastExecutedAt  *time.Time
	Executions      int
	LastOrderID     *kernel.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewScheduledOrder validates scheduledFor >= now and, with a recurrence,
// endDate >= scheduledFor. The first execution is at scheduledFor.
func NewScheduledOrder(
	id, buyerID, vendorID kernel.UUID,
	cart CartSnapshot,
	scheduledFor time.Time,
	preferences DeliveryPreferences,
	recurrence *Recurrence,
	now time.Time,
) (*ScheduledOrder, error) {
	scheduledFor = scheduledFor.UTC()

	var whenErr, recErr error
	if scheduledFor.IsZero() {
		whenErr = errs.NewValueIsRequiredError("scheduled for")
	} else if scheduledFor.Before(now) {
		whenErr = errs.NewValueIsInvalidErrorWithCause("scheduled for",
			fmt.Errorf("%s is in the past", scheduledFor.Format(time.RFC3339)))
	}
	if recurrence != nil {
		if err := recurrence.Validate(); err != nil {
			recErr = err
		} else if recurrence.EndDate().Before(scheduledFor) {
			recErr = errs.NewValueIsInvalidErrorWithCause("recurrence end date",
				fmt.Errorf("%s is before the first execution", recurrence.EndDate().Format(time.RFC3339)))
		}
	}

	if err := errors.Join(
		id.Validate(),
		buyerID.Validate(),
		vendorID.Validate(),
		cart.Validate(),
		preferences.Validate(),
		whenErr,
		recErr,
	); err != nil {
		return nil, err
	}

	return &ScheduledOrder{
		id:              id,
		buyerID:         buyerID,
		vendorID:        vendorID,
		scheduledFor:    scheduledFor,
		recurrence:      recurrence,
		cart:            cart,
		preferences:     preferences,
		status:          StatusScheduled,
		nextExecutionAt: scheduledFor,
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreScheduledOrder rebuilds a stored schedule.
func RestoreScheduledOrder(s Snapshot) (*ScheduledOrder, error) {
	if _, err := ParseStatus(string(s.Status)); err != nil {
		return nil, err
	}
	if err := errors.Join(
		s.ID.Validate(), s.BuyerID.Validate(), s.VendorID.Validate(),
		s.Cart.Validate(), s.Preferences.Validate(),
	); err != nil {
		return nil, err
	}
	return &ScheduledOrder{
		id:              s.ID,
		buyerID:         s.BuyerID,
		vendorID:        s.VendorID,
		scheduledFor:    s.ScheduledFor,
		recurrence:      s.Recurrence,
		cart:            s.Cart,
		preferences:     s.Preferences,
		status:          s.Status,
		nextExecutionAt: s.NextExecutionAt,
		lastExecutedAt:  s.LastExecutedAt,
		executions:      s.Executions,
		lastOrderID:     s.LastOrderID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		isConstructed:   true,
	}, nil
}

func (s *ScheduledOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduledOrderIsNotConstructed
	}
	return nil
}

func (s *ScheduledOrder) ID() kernel.UUID                  { return s.id }
func (s *ScheduledOrder) BuyerID() kernel.UUID             { return s.buyerID }
func (s *ScheduledOrder) VendorID() kernel.UUID            { return s.vendorID }
func (s *ScheduledOrder) ScheduledFor() time.Time          { return s.scheduledFor }
func (s *ScheduledOrder) Recurrence() *Recurrence          { return s.recurrence }
func (s *ScheduledOrder) Cart() CartSnapshot               { return s.cart }
func (s *ScheduledOrder) Preferences() DeliveryPreferences { return s.preferences }
func (s *ScheduledOrder) Status() Status                   { return s.status }
func (s *ScheduledOrder) NextExecutionAt() time.Time       { return s.nextExecutionAt }
func (s *ScheduledOrder) LastExecutedAt() *time.Time       { return s.lastExecutedAt }
func (s *ScheduledOrder) Executions() int                  { return s.executions }
func (s *ScheduledOrder) LastOrderID() *kernel.UUID        { return s.lastOrderID }
func (s *ScheduledOrder) CreatedAt() time.Time             { return s.createdAt }
func (s *ScheduledOrder) UpdatedAt() time.Time             { return s.updatedAt }

// IsDue reports whether the schedule should run at now.
func (s *ScheduledOrder) IsDue(now time.Time) bool {
	return s.status == StatusScheduled && !s.nextExecutionAt.After(now)
}

// NextOrderID is the deterministic id of the order the next execution
// creates. Retrying a failed execution yields the same id, so the order
// creator can deduplicate.
func (s *ScheduledOrder) NextOrderID() kernel.UUID {
	return kernel.DeriveUUID(s.id, fmt.Sprintf("execution-%d", s.executions+1))
}

func (s *ScheduledOrder) Pause(now time.Time) error {
	return s.move(StatusScheduled, StatusPaused, "pause", now)
}

// Resume reactivates a paused schedule. Recurring occurrences that fell
// inside the pause are skipped, so the next execution is the first one at or
// after now; the schedule completes if none is left before the end date. A
// one-shot schedule whose time passed while paused runs on the next tick.
func (s *ScheduledOrder) Resume(now time.Time) error {
	if err := s.move(StatusPaused, StatusScheduled, "resume", now); err != nil {
		return err
	}
	if s.recurrence == nil {
		return nil
	}
	next := s.nextExecutionAt
	for next.Before(now) {
		next = s.recurrence.Next(next)
	}
	if next.After(s.recurrence.EndDate()) {
		s.status = StatusCompleted
		return nil
	}
	s.nextExecutionAt = next
	return nil
}

// Cancel ends the schedule from any non-terminal status.
func (s *ScheduledOrder) Cancel(now time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewInvalidStateError(entityName, s.status.String(), "cancel")
	}
	s.status = StatusCanceled
	s.updatedAt = now
	return nil
}

// RecordExecution stores the materialized order and advances to the next
// occurrence, completing the schedule when there is none.
func (s *ScheduledOrder) RecordExecution(orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if s.status != StatusScheduled {
		return errs.NewInvalidStateError(entityName, s.status.String(), "execute")
	}

	s.executions++
	s.lastExecutedAt = &now
	s.lastOrderID = &orderID
	s.updatedAt = now

	if s.recurrence == nil {
		s.status = StatusCompleted
		return nil
	}
	next := s.recurrence.Next(s.nextExecutionAt)
	if next.After(s.recurrence.EndDate()) {
		s.status = StatusCompleted
		return nil
	}
	s.nextExecutionAt = next
	return nil
}

func (s *ScheduledOrder) move(from, to Status, action string, now time.Time) error {
	if s.status != from {
		return errs.NewInvalidStateError(entityName, s.status.String(), action)
	}
	s.status = to
	s.updatedAt = now
	return nil
}
