package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/speeti/speeti/internal/domain/errors"
	"github.com/speeti/speeti/internal/domain/model"
	"github.com/speeti/speeti/internal/domain/repository"
)

// verificationMessage prompts the customer to confirm the order email before
// details are disclosed.
const verificationMessage = "Bitte bestätige die E-Mail-Adresse der Bestellung, um alle Details zu sehen."

// TrackingUseCase resolves client-supplied order references into sanitized,
// access-controlled tracking payloads. The whole path is read-only.
type TrackingUseCase struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	addresses repository.AddressRepository
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(orders repository.OrderRepository, users repository.UserRepository, addresses repository.AddressRepository) *TrackingUseCase {
	return &TrackingUseCase{orders: orders, users: users, addresses: addresses}
}

// Track locates the referenced order and returns either the full tracking
// view or a minimal verification prompt, depending on the access guard.
func (u *TrackingUseCase) Track(ctx context.Context, reference string, creds model.TrackingCredentials) (*model.TrackingResult, error) {
	raw, idCandidate := NormalizeReference(reference)
	if raw == "" {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.FindByReference(ctx, raw, idCandidate)
	if err != nil {
		return nil, err
	}

	owner, err := u.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	if !disclose(order, owner, creds) {
		return &model.TrackingResult{
			RequiresVerification: true,
			OrderNumber:          order.DisplayNumber(),
			Message:              verificationMessage,
		}, nil
	}

	items, err := u.orders.ItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	var address *model.TrackingAddress
	if order.AddressID != nil {
		addr, err := u.addresses.GetByID(ctx, *order.AddressID)
		switch {
		case err == nil:
			address = &model.TrackingAddress{
				Street:      addr.Street,
				HouseNumber: addr.HouseNumber,
				PostalCode:  addr.PostalCode,
				City:        addr.City,
			}
		case !errors.Is(err, domainErrors.ErrNotFound):
			return nil, err
		}
	}

	view := &model.TrackingView{
		OrderNumber:   order.DisplayNumber(),
		Status:        model.NormalizeStatus(string(order.Status)),
		StatusInfo:    model.StatusInfo(order.Status),
		Total:         order.Total,
		DeliveryFee:   order.DeliveryFee,
		Address:       address,
		CustomerName:  owner.FirstName,
		Items:         trackingItems(items),
		CreatedAt:     order.CreatedAt,
		ScheduledTime: order.ScheduledTime,
		Timeline:      model.ComputeTimeline(order.Status),
	}

	return &model.TrackingResult{Verified: true, OrderNumber: view.OrderNumber, View: view}, nil
}

// disclose implements the access guard: an exact token match or a
// case-insensitive email match releases full detail. Missing credentials are
// a guaranteed mismatch.
func disclose(order *model.Order, owner *model.User, creds model.TrackingCredentials) bool {
	if creds.Token != "" && order.AccessToken != "" && creds.Token == order.AccessToken {
		return true
	}
	if creds.Email != "" && strings.EqualFold(creds.Email, owner.Email) {
		return true
	}
	return false
}

func trackingItems(items []model.OrderItem) []model.TrackingItem {
	result := make([]model.TrackingItem, 0, len(items))
	for _, item := range items {
		result = append(result, model.TrackingItem{
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return result
}
