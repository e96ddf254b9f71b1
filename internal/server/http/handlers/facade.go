package handlers

import (
	"context"

	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, addressID *int64, scheduledTime string, items []usecase.CheckoutItem) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// TrackingFacade resolves order references for the public tracking endpoint.
type TrackingFacade interface {
	Track(ctx context.Context, reference string, creds model.TrackingCredentials) (*model.TrackingResult, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	TrackingFacade
}
