package repository

import (
	"context"

	"github.com/speeti/speeti/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their
// item snapshots.
type OrderRepository interface {
	// Create persists the order together with its items in one transaction
	// and returns the stored order with identifiers and timestamps set.
	Create(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// FindByReference matches an order by exact order number, exact numeric
	// id, or substring containment of the id candidate within the stringified
	// id. The substring fallback can false-positive on short references; the
	// first row by ascending id wins, deterministically.
	FindByReference(ctx context.Context, number, idCandidate string) (*model.Order, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// SelectBatchForNotification claims orders whose status changed since the
	// last notification and marks them notified within the same transaction.
	SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error)
}
