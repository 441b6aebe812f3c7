package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplyModificationCommandIsNotConstructed = errors.New(
		"ApplyModificationCommand must be created via NewApplyModificationCommand constructor",
	)
)

type ApplyModificationCommand struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApplyModificationCommand(requestID kernel.UUID) (ApplyModificationCommand, error) {
	if err := requestID.Validate(); err != nil {
		return ApplyModificationCommand{}, err
	}
	return ApplyModificationCommand{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyModificationCommand) Validate() error {
	return c.guard.Validate(ErrApplyModificationCommandIsNotConstructed)
}

func (c ApplyModificationCommand) RequestID() kernel.UUID { return c.requestID }
