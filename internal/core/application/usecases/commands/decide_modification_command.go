package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDecideModificationCommandIsNotConstructed = errors.New(
		"DecideModificationCommand must be created via NewDecideModificationCommand constructor",
	)
)

// DecideModificationCommand approves or rejects a pending request.
type DecideModificationCommand struct {
	requestID kernel.UUID
	approve   bool

	guard guard.ConstructorGuard
}

func NewDecideModificationCommand(requestID kernel.UUID, approve bool) (DecideModificationCommand, error) {
	if err := requestID.Validate(); err != nil {
		return DecideModificationCommand{}, err
	}
	return DecideModificationCommand{
		requestID: requestID,
		approve:   approve,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DecideModificationCommand) Validate() error {
	return c.guard.Validate(ErrDecideModificationCommandIsNotConstructed)
}

func (c DecideModificationCommand) RequestID() kernel.UUID { return c.requestID }
func (c DecideModificationCommand) Approve() bool          { return c.approve }
