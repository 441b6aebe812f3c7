// Package transitionrepo stores the append-only order status history.
package transitionrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TransitionDTO is one row of order_status_transitions. Seq is assigned by the
// database and breaks ties between transitions with equal timestamps.
type TransitionDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq        int64          `gorm:"->;type:bigserial"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromStatus *string        `gorm:"type:varchar(32)"`
	ToStatus   string         `gorm:"type:varchar(32);not null"`
	Actor      string         `gorm:"type:varchar(128);not null"`
	Automated  bool           `gorm:"not null"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

func (TransitionDTO) TableName() string {
	return "order_status_transitions"
}

func fromDomain(t *order.Transition) (TransitionDTO, error) {
	metadata, err := json.Marshal(t.Metadata())
	if err != nil {
		return TransitionDTO{}, err
	}

	var from *string
	if t.From() != nil {
		s := t.From().String()
		from = &s
	}

	return TransitionDTO{
		ID:         t.ID().Bytes(),
		OrderID:    t.OrderID().Bytes(),
		FromStatus: from,
		ToStatus:   t.To().String(),
		Actor:      t.Actor().String(),
		Automated:  t.Automated(),
		Metadata:   datatypes.JSON(metadata),
		CreatedAt:  t.CreatedAt(),
	}, nil
}

func toDomain(dto TransitionDTO) (*order.Transition, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var from *order.Status
	if dto.FromStatus != nil {
		s, parseErr := order.ParseStatus(*dto.FromStatus)
		if parseErr != nil {
			return nil, parseErr
		}
		from = &s
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	var metadata order.TransitionMetadata
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return order.RestoreTransition(id, orderID, from, to, order.Actor(dto.Actor), dto.Automated,
		metadata, dto.CreatedAt.UTC())
}
