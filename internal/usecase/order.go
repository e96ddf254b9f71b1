package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/domain/repository"
	pkgAuth "github.com/speeti/speeti/internal/pkg/auth"
)

// orderNumberPrefix starts every generated order number; the numeric part is
// the checkout timestamp in milliseconds.
const orderNumberPrefix = "SPT-"

// CheckoutItem is one catalog position requested at checkout.
type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

// OrderUseCase encapsulates the order lifecycle: creation at checkout,
// listing, and status transitions driven by order-management tooling.
type OrderUseCase struct {
	orders           repository.OrderRepository
	products         repository.ProductRepository
	tokens           pkgAuth.AccessTokenGenerator
	deliveryFee      float64
	freeDeliveryOver float64
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, tokens pkgAuth.AccessTokenGenerator, deliveryFee, freeDeliveryOver float64) *OrderUseCase {
	return &OrderUseCase{
		orders:           orders,
		products:         products,
		tokens:           tokens,
		deliveryFee:      deliveryFee,
		freeDeliveryOver: freeDeliveryOver,
	}
}

// Checkout creates an order with item snapshots taken from the catalog at
// call time. The delivery fee is waived above the free-delivery threshold.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, addressID *int64, scheduledTime string, items []CheckoutItem) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domainErrors.ErrInvalidQuantity
		}
		ids = append(ids, item.ProductID)
	}

	products, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, domainErrors.ErrNotFound
		}
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	fee := u.deliveryFee
	if total >= u.freeDeliveryOver {
		fee = 0
	}

	token, err := u.tokens.Generate()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:        userID,
		AddressID:     addressID,
		Number:        newOrderNumber(),
		Status:        model.OrderStatusPending,
		Total:         total,
		DeliveryFee:   fee,
		AccessToken:   token,
		ScheduledTime: scheduledTime,
	}

	return u.orders.Create(ctx, order, orderItems)
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to the given status after validating the
// transition against the lifecycle table.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !model.KnownStatus(status) {
		return domainErrors.ErrUnknownStatus
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanTransitionTo(status) {
		return domainErrors.ErrInvalidStatusTransition
	}

	return u.orders.UpdateStatus(ctx, orderID, status)
}

// SelectBatchForNotification claims orders with unannounced status changes.
func (u *OrderUseCase) SelectBatchForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error) {
	return u.orders.SelectBatchForNotification(ctx, limit)
}

func newOrderNumber() string {
	return fmt.Sprintf("%s%d", orderNumberPrefix, time.Now().UnixMilli())
}
