package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrExecuteDueScheduledOrdersCommandIsNotConstructed = errors.New(
		"ExecuteDueScheduledOrdersCommand must be created via NewExecuteDueScheduledOrdersCommand constructor",
	)
)

// DefaultExecutionBatch bounds how many due schedules one run picks up.
const DefaultExecutionBatch = 50

type ExecuteDueScheduledOrdersCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewExecuteDueScheduledOrdersCommand(limit int) (ExecuteDueScheduledOrdersCommand, error) {
	if limit <= 0 {
		return ExecuteDueScheduledOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return ExecuteDueScheduledOrdersCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExecuteDueScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExecuteDueScheduledOrdersCommandIsNotConstructed)
}

func (c ExecuteDueScheduledOrdersCommand) Limit() int { return c.limit }
