package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListModificationsQueryHandler struct {
	db *gorm.DB
}

func NewListModificationsQueryHandler(db *gorm.DB) ListModificationsQueryHandler {
	return ListModificationsQueryHandler{db: db}
}

// Handle returns the order's modification requests, oldest first.
func (h ListModificationsQueryHandler) Handle(
	ctx context.Context,
	query ListOrderRequestsQuery,
) ([]ModificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, type, original_data, new_data, reason, status,
			created_at, decided_at, applied_at
		FROM order_modification_requests
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ModificationResponse, 0)
	for rows.Next() {
		var (
			resp              ModificationResponse
			id, orderID       uuid.UUID
			original, newData []byte
			decided, applied  sql.NullTime
		)
		if err = rows.Scan(&id, &orderID, &resp.Type, &original, &newData, &resp.Reason, &resp.Status,
			&resp.CreatedAt, &decided, &applied); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.OriginalData, resp.NewData = original, newData
		resp.CreatedAt = resp.CreatedAt.UTC()
		resp.DecidedAt, resp.AppliedAt = utcPtr(decided), utcPtr(applied)
		result = append(result, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type ListCancellationsQueryHandler struct {
	db *gorm.DB
}

func NewListCancellationsQueryHandler(db *gorm.DB) ListCancellationsQueryHandler {
	return ListCancellationsQueryHandler{db: db}
}

// Handle returns the order's cancellation requests, oldest first.
func (h ListCancellationsQueryHandler) Handle(
	ctx context.Context,
	query ListOrderRequestsQuery,
) ([]CancellationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, reason, refund_type, refund_amount, currency, status,
			created_at, decided_at, processed_at
		FROM order_cancellation_requests
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CancellationResponse, 0)
	for rows.Next() {
		var (
			resp               CancellationResponse
			id, orderID        uuid.UUID
			decided, processed sql.NullTime
		)
		if err = rows.Scan(&id, &orderID, &resp.Reason, &resp.RefundType, &resp.RefundAmount, &resp.Currency,
			&resp.Status, &resp.CreatedAt, &decided, &processed); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.CreatedAt = resp.CreatedAt.UTC()
		resp.DecidedAt, resp.ProcessedAt = utcPtr(decided), utcPtr(processed)
		result = append(result, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
