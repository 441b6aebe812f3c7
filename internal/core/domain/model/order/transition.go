package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Actor identifies who caused a transition: a user id or AutomatedActor.
type Actor string

const AutomatedActor Actor = "automated"

// NewActor rejects blank actors.
func NewActor(s string) (Actor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("actor")
	}
	return Actor(s), nil
}

func (a Actor) String() string {
	return string(a)
}

// TransitionMetadata is the typed context attached to a transition.
type TransitionMetadata struct {
	Trigger    TriggerEvent      `json:"trigger,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Transition is an append-only record of one status change. From is nil for
// the record written when the order is created.
type Transition struct {
	id        kernel.UUID
	orderID   kernel.UUID
	from      *Status
	to        Status
	actor     Actor
	automated bool
	metadata  TransitionMetadata
	createdAt time.Time
}

func newTransition(
	orderID kernel.UUID,
	from *Status,
	to Status,
	actor Actor,
	metadata TransitionMetadata,
	now time.Time,
) *Transition {
	var fromCopy *Status
	if from != nil {
		f := *from
		fromCopy = &f
	}
	return &Transition{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		from:      fromCopy,
		to:        to,
		actor:     actor,
		automated: actor == AutomatedActor,
		metadata:  metadata,
		createdAt: now,
	}
}

// RestoreTransition rebuilds a persisted transition.
func RestoreTransition(
	id, orderID kernel.UUID,
	from *Status,
	to Status,
	actor Actor,
	automated bool,
	metadata TransitionMetadata,
	createdAt time.Time,
) (*Transition, error) {
	var fromErr error
	if from != nil {
		fromErr = from.Validate()
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), fromErr, to.Validate()); err != nil {
		return nil, err
	}
	return &Transition{
		id:        id,
		orderID:   orderID,
		from:      from,
		to:        to,
		actor:     actor,
		automated: automated,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (t *Transition) ID() kernel.UUID              { return t.id }
func (t *Transition) OrderID() kernel.UUID         { return t.orderID }
func (t *Transition) From() *Status                { return t.from }
func (t *Transition) To() Status                   { return t.to }
func (t *Transition) Actor() Actor                 { return t.actor }
func (t *Transition) Automated() bool              { return t.automated }
func (t *Transition) Metadata() TransitionMetadata { return t.metadata }
func (t *Transition) CreatedAt() time.Time         { return t.createdAt }

// ValidateHistory checks that transitions, ordered by creation, form a walk of
// the status graph that starts with a creation record.
func ValidateHistory(transitions []*Transition) error {
	var current *Status
	for i, t := range transitions {
		switch {
		case i == 0:
			if t.from != nil || !t.to.IsInitial() {
				return errs.NewValueIsInvalidErrorWithCause("history",
					fmt.Errorf("first transition must create the order, got %s", describe(t)))
			}
		case t.from == nil || *t.from != *current:
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("transition %d does not start at %s: %s", i, current, describe(t)))
		case !current.CanTransitionTo(t.to):
			return errs.NewInvalidTransitionError(current.String(), t.to.String())
		}
		to := t.to
		current = &to
	}
	return nil
}

func describe(t *Transition) string {
	from := "none"
	if t.from != nil {
		from = t.from.String()
	}
	return fmt.Sprintf("%s -> %s", from, t.to)
}
