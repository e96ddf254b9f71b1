package app

import (
	"context"
	"fmt"

	"github.com/speeti/speeti/internal/adapter/mailer"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/usecase"
)

// StoreFacade aggregates the application's use cases behind one surface
// consumed by HTTP handlers and the notification worker.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	tracking *usecase.TrackingUseCase
	mail     mailer.Client
}

// NewStoreFacade constructs the facade.
func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, tracking *usecase.TrackingUseCase, mail mailer.Client) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, tracking: tracking, mail: mail}
}

func (f *StoreFacade) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password, firstName, lastName)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

// IsAdmin reports whether the user may call order-management endpoints.
func (f *StoreFacade) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	usr, err := f.auth.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return usr.Admin, nil
}

func (f *StoreFacade) Checkout(ctx context.Context, userID int64, addressID *int64, scheduledTime string, items []usecase.CheckoutItem) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, addressID, scheduledTime, items)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) Track(ctx context.Context, reference string, creds model.TrackingCredentials) (*model.TrackingResult, error) {
	return f.tracking.Track(ctx, reference, creds)
}

func (f *StoreFacade) OrdersForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error) {
	return f.orders.SelectBatchForNotification(ctx, limit)
}

// SendStatusMail composes and dispatches the status-change mail for one
// claimed notification.
func (f *StoreFacade) SendStatusMail(ctx context.Context, n model.StatusNotification) error {
	info := model.StatusInfo(n.Order.Status)
	msg := mailer.Message{
		To:      n.Email,
		Subject: fmt.Sprintf("%s %s – Bestellung %s", info.Icon, info.Label, n.Order.DisplayNumber()),
		Text:    fmt.Sprintf("Hallo %s, deine Bestellung %s ist jetzt: %s.", n.FirstName, n.Order.DisplayNumber(), info.Label),
	}
	return f.mail.Send(ctx, msg)
}
