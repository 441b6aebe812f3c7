package transitionrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTransitionRepository implements ports.TransitionRepository. Every added
// transition is tracked so the unit of work can announce it after commit.
type GormTransitionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTransitionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransitionRepository {
	return &GormTransitionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTransitionRepository) Add(ctx context.Context, transition *order.Transition) error {
	dto, err := fromDomain(transition)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(transition.ID(), transition)
	return nil
}

// ListByOrder returns the history oldest first.
func (r *GormTransitionRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Transition, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	transitions := make([]*order.Transition, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}
	return transitions, nil
}
