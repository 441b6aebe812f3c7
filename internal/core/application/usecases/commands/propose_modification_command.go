package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrProposeModificationCommandIsNotConstructed = errors.New(
		"ProposeModificationCommand must be created via NewProposeModificationCommand constructor",
	)
)

// ProposeModificationCommand asks for a change to an open order.
//
// original may be nil, in which case the current values are read from the
// order when the request is created.
type ProposeModificationCommand struct {
	orderID  kernel.UUID
	original modification.Payload
	proposed modification.Payload
	reason   string

	guard guard.ConstructorGuard
}

func NewProposeModificationCommand(
	orderID kernel.UUID,
	original, proposed modification.Payload,
	reason string,
) (ProposeModificationCommand, error) {
	var proposedErr, originalErr, reasonErr error
	if proposed == nil {
		proposedErr = errs.NewValueIsRequiredError("new data")
	} else {
		proposedErr = proposed.Validate()
		if original != nil && original.Type() != proposed.Type() {
			originalErr = errs.NewValueIsInvalidError("original data")
		}
	}
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(orderID.Validate(), proposedErr, originalErr, reasonErr); err != nil {
		return ProposeModificationCommand{}, err
	}

	return ProposeModificationCommand{
		orderID:  orderID,
		original: original,
		proposed: proposed,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProposeModificationCommand) Validate() error {
	return c.guard.Validate(ErrProposeModificationCommandIsNotConstructed)
}

func (c ProposeModificationCommand) OrderID() kernel.UUID           { return c.orderID }
func (c ProposeModificationCommand) Original() modification.Payload { return c.original }
func (c ProposeModificationCommand) Proposed() modification.Payload { return c.proposed }
func (c ProposeModificationCommand) Reason() string                 { return c.reason }
