package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrChangeScheduledOrderStateCommandIsNotConstructed = errors.New(
		"ChangeScheduledOrderStateCommand must be created via NewChangeScheduledOrderStateCommand constructor",
	)
)

// ScheduleAction is a lifecycle action on a scheduled order.
type ScheduleAction string

const (
	PauseSchedule  ScheduleAction = "pause"
	ResumeSchedule ScheduleAction = "resume"
	CancelSchedule ScheduleAction = "cancel"
)

type ChangeScheduledOrderStateCommand struct {
	scheduleID kernel.UUID
	action     ScheduleAction

	guard guard.ConstructorGuard
}

func NewChangeScheduledOrderStateCommand(scheduleID kernel.UUID, action ScheduleAction) (ChangeScheduledOrderStateCommand, error) {
	var actionErr error
	switch action {
	case PauseSchedule, ResumeSchedule, CancelSchedule:
	default:
		actionErr = errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not supported", action))
	}
	if err := errors.Join(scheduleID.Validate(), actionErr); err != nil {
		return ChangeScheduledOrderStateCommand{}, err
	}

	return ChangeScheduledOrderStateCommand{
		scheduleID: scheduleID,
		action:     action,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeScheduledOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeScheduledOrderStateCommandIsNotConstructed)
}

func (c ChangeScheduledOrderStateCommand) ScheduleID() kernel.UUID { return c.scheduleID }
func (c ChangeScheduledOrderStateCommand) Action() ScheduleAction  { return c.action }
