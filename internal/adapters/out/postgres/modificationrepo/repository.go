package modificationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormModificationRepository implements ports.ModificationRepository.
type GormModificationRepository struct {
	db *gorm.DB
}

func NewGormModificationRepository(db *gorm.DB) *GormModificationRepository {
	return &GormModificationRepository{db: db}
}

func (r *GormModificationRepository) Add(ctx context.Context, request *modification.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(request)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("modification request", request.ID().String(), err)
		}
		return err
	}
	return nil
}

// Update writes the mutable state of a request: status and decision times.
func (r *GormModificationRepository) Update(ctx context.Context, request *modification.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(request)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ModificationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"decided_at": dto.DecidedAt,
			"applied_at": dto.AppliedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("modification request", request.ID().String())
	}
	return nil
}

func (r *GormModificationRepository) Get(ctx context.Context, id kernel.UUID) (*modification.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ModificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("modification request", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormModificationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*modification.Request, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ModificationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*modification.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
