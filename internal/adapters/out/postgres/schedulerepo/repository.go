package schedulerepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScheduledOrderRepository implements ports.ScheduledOrderRepository.
type GormScheduledOrderRepository struct {
	db *gorm.DB
}

func NewGormScheduledOrderRepository(db *gorm.DB) *GormScheduledOrderRepository {
	return &GormScheduledOrderRepository{db: db}
}

func (r *GormScheduledOrderRepository) Add(ctx context.Context, scheduled *schedule.ScheduledOrder) error {
	if err := scheduled.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(scheduled)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("scheduled order", scheduled.ID().String(), err)
		}
		return err
	}
	return nil
}

// Update rewrites the lifecycle columns. Cart, preferences and recurrence
// are immutable after creation.
func (r *GormScheduledOrderRepository) Update(ctx context.Context, scheduled *schedule.ScheduledOrder) error {
	if err := scheduled.Validate(); err != nil {
		return err
	}
	dto, err := fromDomain(scheduled)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ScheduledOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":            dto.Status,
			"next_execution_at": dto.NextExecutionAt,
			"last_executed_at":  dto.LastExecutedAt,
			"executions":        dto.Executions,
			"last_order_id":     dto.LastOrderID,
			"updated_at":        dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("scheduled order", scheduled.ID().String())
	}
	return nil
}

func (r *GormScheduledOrderRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate loads a schedule and locks its row for the current transaction.
func (r *GormScheduledOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormScheduledOrderRepository) load(db *gorm.DB, id kernel.UUID) (*schedule.ScheduledOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduledOrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scheduled order", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormScheduledOrderRepository) ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*schedule.ScheduledOrder, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScheduledOrderDTO
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID.Bytes()).
		Order("next_execution_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return restoreAll(dtos)
}

// ListDue skips rows locked by a concurrent executor.
func (r *GormScheduledOrderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*schedule.ScheduledOrder, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []ScheduledOrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND next_execution_at <= ?", schedule.StatusScheduled.String(), now).
		Order("next_execution_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return restoreAll(dtos)
}

func restoreAll(dtos []ScheduledOrderDTO) ([]*schedule.ScheduledOrder, error) {
	result := make([]*schedule.ScheduledOrder, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}
