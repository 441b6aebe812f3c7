package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDecideCancellationCommandIsNotConstructed = errors.New(
		"DecideCancellationCommand must be created via NewDecideCancellationCommand constructor",
	)
)

type DecideCancellationCommand struct {
	cancellationID kernel.UUID
	approve        bool

	guard guard.ConstructorGuard
}

func NewDecideCancellationCommand(cancellationID kernel.UUID, approve bool) (DecideCancellationCommand, error) {
	if err := cancellationID.Validate(); err != nil {
		return DecideCancellationCommand{}, err
	}
	return DecideCancellationCommand{
		cancellationID: cancellationID,
		approve:        approve,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c DecideCancellationCommand) Validate() error {
	return c.guard.Validate(ErrDecideCancellationCommandIsNotConstructed)
}

func (c DecideCancellationCommand) CancellationID() kernel.UUID { return c.cancellationID }
func (c DecideCancellationCommand) Approve() bool               { return c.approve }
