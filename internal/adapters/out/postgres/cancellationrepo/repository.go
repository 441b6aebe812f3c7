package cancellationrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCancellationRepository implements ports.CancellationRepository.
type GormCancellationRepository struct {
	db *gorm.DB
}

func NewGormCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

func (r *GormCancellationRepository) Add(ctx context.Context, request *cancellation.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("cancellation request", request.ID().String(), err)
		}
		return err
	}
	return nil
}

// Update writes the mutable state of a request: status and decision times.
func (r *GormCancellationRepository) Update(ctx context.Context, request *cancellation.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	dto := fromDomain(request)
	result := r.db.WithContext(ctx).Model(&CancellationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"decided_at":   dto.DecidedAt,
			"processed_at": dto.ProcessedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cancellation request", request.ID().String())
	}
	return nil
}

func (r *GormCancellationRepository) Get(ctx context.Context, id kernel.UUID) (*cancellation.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CancellationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cancellation request", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCancellationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*cancellation.Request, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CancellationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	requests := make([]*cancellation.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
