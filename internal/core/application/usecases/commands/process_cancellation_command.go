package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrProcessCancellationCommandIsNotConstructed = errors.New(
		"ProcessCancellationCommand must be created via NewProcessCancellationCommand constructor",
	)
)

type ProcessCancellationCommand struct {
	cancellationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessCancellationCommand(cancellationID kernel.UUID) (ProcessCancellationCommand, error) {
	if err := cancellationID.Validate(); err != nil {
		return ProcessCancellationCommand{}, err
	}
	return ProcessCancellationCommand{
		cancellationID: cancellationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessCancellationCommand) Validate() error {
	return c.guard.Validate(ErrProcessCancellationCommandIsNotConstructed)
}

func (c ProcessCancellationCommand) CancellationID() kernel.UUID { return c.cancellationID }
