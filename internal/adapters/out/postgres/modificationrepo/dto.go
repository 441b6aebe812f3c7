// Package modificationrepo persists order modification requests. Both payload
// snapshots are stored as jsonb with their kind discriminator.
package modificationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ModificationDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type         string         `gorm:"type:varchar(32);not null"`
	OriginalData datatypes.JSON `gorm:"type:jsonb;not null"`
	NewData      datatypes.JSON `gorm:"type:jsonb;not null"`
	Reason       string         `gorm:"type:text;not null"`
	Status       string         `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	DecidedAt    *time.Time     `gorm:"type:timestamptz"`
	AppliedAt    *time.Time     `gorm:"type:timestamptz"`
}

func (ModificationDTO) TableName() string {
	return "order_modification_requests"
}

func fromDomain(r *modification.Request) (ModificationDTO, error) {
	original, err := modification.MarshalPayload(r.Original())
	if err != nil {
		return ModificationDTO{}, err
	}
	proposed, err := modification.MarshalPayload(r.Proposed())
	if err != nil {
		return ModificationDTO{}, err
	}

	return ModificationDTO{
		ID:           r.ID().Bytes(),
		OrderID:      r.OrderID().Bytes(),
		Type:         r.Type().String(),
		OriginalData: datatypes.JSON(original),
		NewData:      datatypes.JSON(proposed),
		Reason:       r.Reason(),
		Status:       r.Status().String(),
		CreatedAt:    r.CreatedAt(),
		DecidedAt:    r.DecidedAt(),
		AppliedAt:    r.AppliedAt(),
	}, nil
}

func toDomain(dto ModificationDTO) (*modification.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	kind, err := modification.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	status, err := modification.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	original, err := modification.UnmarshalPayloadAs(kind, dto.OriginalData)
	if err != nil {
		return nil, err
	}
	proposed, err := modification.UnmarshalPayloadAs(kind, dto.NewData)
	if err != nil {
		return nil, err
	}

	return modification.RestoreRequest(modification.Snapshot{
		ID:        id,
		OrderID:   orderID,
		Original:  original,
		Proposed:  proposed,
		Reason:    dto.Reason,
		Status:    status,
		CreatedAt: dto.CreatedAt.UTC(),
		DecidedAt: utc(dto.DecidedAt),
		AppliedAt: utc(dto.AppliedAt),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
