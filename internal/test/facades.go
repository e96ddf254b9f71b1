package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/speeti/speeti/internal/adapter/mailer"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn     func(context.Context, int64, *int64, string, []usecase.CheckoutItem) (*model.Order, error)
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
}

// Checkout delegates to provided function or returns default order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, addressID *int64, scheduledTime string, items []usecase.CheckoutItem) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, addressID, scheduledTime, items)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
}

// UpdateOrderStatus executes configured transition handler.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

// TrackingFacadeStub simulates reference resolution.
type TrackingFacadeStub struct {
	TrackFn func(context.Context, string, model.TrackingCredentials) (*model.TrackingResult, error)
}

// Track returns configured tracking outcome or a default verification prompt.
func (s TrackingFacadeStub) Track(ctx context.Context, reference string, creds model.TrackingCredentials) (*model.TrackingResult, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, reference, creds)
	}
	return &model.TrackingResult{
		RequiresVerification: true,
		OrderNumber:          "SPEETI-00001",
	}, nil
}

// NotifierFacadeStub mimics worker interactions with the store facade.
type NotifierFacadeStub struct {
	Batches [][]model.StatusNotification
	FetchFn func(context.Context, int) ([]model.StatusNotification, error)
	SendFn  func(context.Context, model.StatusNotification) error
	Sent    []model.StatusNotification

	mu             sync.Mutex
	fetchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *NotifierFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *NotifierFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForNotification returns batches from configured queue.
func (s *NotifierFacadeStub) OrdersForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.fetchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// SendStatusMail records dispatched notifications.
func (s *NotifierFacadeStub) SendStatusMail(ctx context.Context, n model.StatusNotification) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, n)
	return nil
}

// MailerStub records outgoing messages.
type MailerStub struct {
	SendFn func(context.Context, mailer.Message) error

	mu       sync.Mutex
	Messages []mailer.Message
}

// Send stores the message or delegates to the override.
func (s *MailerStub) Send(ctx context.Context, msg mailer.Message) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (s *MailerStub) Sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

var _ mailer.Client = (*MailerStub)(nil)
