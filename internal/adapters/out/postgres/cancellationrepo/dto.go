// Package cancellationrepo persists order cancellation requests.
package cancellationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CancellationDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Reason       string     `gorm:"type:text;not null"`
	RefundType   string     `gorm:"type:varchar(16);not null"`
	RefundAmount int64      `gorm:"not null"`
	Currency     string     `gorm:"type:char(3);not null"`
	Status       string     `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	DecidedAt    *time.Time `gorm:"type:timestamptz"`
	ProcessedAt  *time.Time `gorm:"type:timestamptz"`
}

func (CancellationDTO) TableName() string {
	return "order_cancellation_requests"
}

func fromDomain(r *cancellation.Request) CancellationDTO {
	return CancellationDTO{
		ID:           r.ID().Bytes(),
		OrderID:      r.OrderID().Bytes(),
		Reason:       r.Reason(),
		RefundType:   r.RefundType().String(),
		RefundAmount: r.Refund().Amount(),
		Currency:     r.Refund().Currency(),
		Status:       r.Status().String(),
		CreatedAt:    r.CreatedAt(),
		DecidedAt:    r.DecidedAt(),
		ProcessedAt:  r.ProcessedAt(),
	}
}

func toDomain(dto CancellationDTO) (*cancellation.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return cancellation.RestoreRequest(cancellation.Snapshot{
		ID:           id,
		OrderID:      orderID,
		Reason:       dto.Reason,
		RefundType:   cancellation.RefundType(dto.RefundType),
		RefundAmount: dto.RefundAmount,
		Currency:     dto.Currency,
		Status:       cancellation.Status(dto.Status),
		CreatedAt:    dto.CreatedAt.UTC(),
		DecidedAt:    utc(dto.DecidedAt),
		ProcessedAt:  utc(dto.ProcessedAt),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
